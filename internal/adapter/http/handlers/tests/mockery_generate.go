package tests

// The hand-written taskServiceMock in tasks_test.go can be swapped for a
// generated one:
//
//	go generate ./internal/adapter/http/handlers/tests
//
//go:generate mockery --name TaskService --dir ../../../../core/ports --output ./mocks --outpkg mocks --filename task_service_mock.go --with-expecter
