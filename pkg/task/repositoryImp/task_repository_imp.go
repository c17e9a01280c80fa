package repositoryImp

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"agrismart/entities"
	"agrismart/pkg/task/repository"
)

type taskRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.TaskRepository { return &taskRepo{db} }

func (r *taskRepo) Create(ctx context.Context, t *entities.Task) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// ListWithCropName orders by due date with missing dates (NULL or empty) first.
func (r *taskRepo) ListWithCropName(ctx context.Context) ([]entities.TaskWithCropName, error) {
	out := []entities.TaskWithCropName{}
	err := r.db.WithContext(ctx).
		Table("tasks").
		Select("tasks.*, crops.name AS crop_name").
		Joins("LEFT JOIN crops ON tasks.crop_id = crops.id").
		Order("CASE WHEN tasks.due_date IS NULL OR tasks.due_date = '' THEN 0 ELSE 1 END").
		Order("tasks.due_date ASC").
		Order("tasks.id ASC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

func (r *taskRepo) SetCompleted(ctx context.Context, id uint, completed bool) error {
	// sqlite counts matched rows, so re-applying the same value still reports 1
	res := r.db.WithContext(ctx).
		Model(&entities.Task{}).
		Where("id = ?", id).
		Update("completed", completed)
	if res.Error != nil {
		return fmt.Errorf("update task %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}
	return nil
}
