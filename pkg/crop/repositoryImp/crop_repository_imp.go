package repositoryImp

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"agrismart/entities"
	"agrismart/pkg/crop/repository"
)

type cropRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CropRepository { return &cropRepo{db} }

func (r *cropRepo) Create(ctx context.Context, c *entities.Crop) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("insert crop: %w", err)
	}
	return nil
}

func (r *cropRepo) List(ctx context.Context) ([]entities.Crop, error) {
	out := []entities.Crop{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list crops: %w", err)
	}
	return out, nil
}
