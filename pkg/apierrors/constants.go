package apierrors

const (
	MsgFailListTask       = "errorListTask"
	MsgFailGetTask        = "failGetTask"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgInvalidTaskFilter  = "invalidTaskFilter"
	MsgTaskNotFound       = "taskNotFound"
)
