package service

import (
	"context"

	"agrismart/entities"
)

type NewTask struct {
	CropID   *int64
	TaskName string
	DueDate  *string
}

type TaskService interface {
	CreateTask(ctx context.Context, in NewTask) (uint, error)
	ListTasks(ctx context.Context) ([]entities.TaskWithCropName, error)
	SetCompleted(ctx context.Context, id uint, completed bool) error
}
