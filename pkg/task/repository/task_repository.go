package repository

import (
	"context"
	"errors"

	"agrismart/entities"
)

// ErrTaskNotFound is returned by SetCompleted when no row has the id.
var ErrTaskNotFound = errors.New("task not found")

type TaskRepository interface {
	Create(ctx context.Context, t *entities.Task) error
	ListWithCropName(ctx context.Context) ([]entities.TaskWithCropName, error)
	SetCompleted(ctx context.Context, id uint, completed bool) error
}
