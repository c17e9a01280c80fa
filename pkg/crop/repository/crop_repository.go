package repository

import (
	"context"

	"agrismart/entities"
)

type CropRepository interface {
	Create(ctx context.Context, c *entities.Crop) error
	List(ctx context.Context) ([]entities.Crop, error)
}
