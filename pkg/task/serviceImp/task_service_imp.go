package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"agrismart/entities"
	"agrismart/pkg/apperr"
	repo "agrismart/pkg/task/repository"
	"agrismart/pkg/task/service"
)

type taskSvc struct{ r repo.TaskRepository }

func NewTaskService(r repo.TaskRepository) service.TaskService { return &taskSvc{r} }

// CreateTask does not look the crop up: a dangling crop_id is stored as is
// and shows up with a null crop name in the listing.
func (s *taskSvc) CreateTask(ctx context.Context, in service.NewTask) (uint, error) {
	name := strings.TrimSpace(in.TaskName)
	if name == "" {
		return 0, fmt.Errorf("task_name is required: %w", apperr.ErrValidation)
	}
	t := &entities.Task{
		CropID:   in.CropID,
		TaskName: name,
		DueDate:  in.DueDate,
	}
	if err := s.r.Create(ctx, t); err != nil {
		return 0, err
	}
	return t.ID, nil
}

func (s *taskSvc) ListTasks(ctx context.Context) ([]entities.TaskWithCropName, error) {
	return s.r.ListWithCropName(ctx)
}

func (s *taskSvc) SetCompleted(ctx context.Context, id uint, completed bool) error {
	err := s.r.SetCompleted(ctx, id, completed)
	if errors.Is(err, repo.ErrTaskNotFound) {
		return fmt.Errorf("task %d: %w", id, apperr.ErrNotFound)
	}
	return err
}
