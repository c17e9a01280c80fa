package service

import (
	"context"

	"agrismart/entities"
)

type NewCrop struct {
	Name        string
	Variety     *string
	PlantedDate *string
}

type CropService interface {
	CreateCrop(ctx context.Context, in NewCrop) (uint, error)
	ListCrops(ctx context.Context) ([]entities.Crop, error)
}
