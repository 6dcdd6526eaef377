package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tasktracker/internal/adapter/http/mapper"
	"tasktracker/internal/adapter/http/middleware"
	"tasktracker/internal/adapter/http/validation"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
	"tasktracker/pkg/apierrors"
)

// maxTaskBodyBytes caps create and update request bodies.
const maxTaskBodyBytes = 1 << 20

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	lang := middleware.GetLang(c)

	filter, err := validation.BuildTaskFilter(c.Request.URL.Query())
	if err != nil {
		zap.L().Debug("rejected task filter", zap.Error(err))
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskFilter, lang)
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTask) {
			abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskFilter, lang)
			return
		}

		zap.L().Error("failed to list tasks", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, apierrors.MsgFailListTask, lang)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

// GetTask answers 200 with a null body when the task does not exist.
func (h *TaskHandler) GetTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	taskID := c.Param("id")

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTaskID) {
			abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang)
			return
		}

		zap.L().Error("failed to get task", zap.String("task_id", taskID), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, apierrors.MsgFailGetTask, lang)
		return
	}

	if task == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(*task))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	payload, err := validation.DecodeTaskPayload(http.MaxBytesReader(c.Writer, c.Request.Body, maxTaskBodyBytes))
	if err != nil {
		zap.L().Debug("rejected task payload", zap.Error(err))
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), payload)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTask) {
			zap.L().Debug("rejected task payload", zap.Error(err))
			abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang)
			return
		}

		zap.L().Error("failed to create task", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, apierrors.MsgFailCreateTask, lang)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	taskID := c.Param("id")

	payload, err := validation.DecodeTaskPayload(http.MaxBytesReader(c.Writer, c.Request.Body, maxTaskBodyBytes))
	if err != nil {
		zap.L().Debug("rejected task payload", zap.String("task_id", taskID), zap.Error(err))
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, payload)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTaskID):
			abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang)
		case errors.Is(err, domain.ErrInvalidTask):
			zap.L().Debug("rejected task payload", zap.String("task_id", taskID), zap.Error(err))
			abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang)
		default:
			zap.L().Error("failed to update task", zap.String("task_id", taskID), zap.Error(err))
			abortWithError(c, http.StatusInternalServerError, apierrors.MsgFailUpdateTask, lang)
		}
		return
	}

	if task == nil {
		abortWithError(c, http.StatusNotFound, apierrors.MsgTaskNotFound, lang)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(*task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	taskID := c.Param("id")

	deleted, err := h.taskService.DeleteTask(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTaskID) {
			abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang)
			return
		}

		zap.L().Error("failed to delete task", zap.String("task_id", taskID), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, apierrors.MsgFailDeleteTask, lang)
		return
	}

	c.JSON(http.StatusOK, mapper.ToDeletedTask(deleted))
}

func abortWithError(c *gin.Context, status int, msgKey string, lang string) {
	c.AbortWithStatusJSON(status, apierrors.CreateError(status, msgKey, lang))
}
