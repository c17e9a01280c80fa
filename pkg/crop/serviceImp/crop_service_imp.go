package serviceImp

import (
	"context"
	"fmt"
	"strings"

	"agrismart/entities"
	"agrismart/pkg/apperr"
	repo "agrismart/pkg/crop/repository"
	"agrismart/pkg/crop/service"
)

type cropSvc struct{ r repo.CropRepository }

func NewCropService(r repo.CropRepository) service.CropService { return &cropSvc{r} }

func (s *cropSvc) CreateCrop(ctx context.Context, in service.NewCrop) (uint, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return 0, fmt.Errorf("name is required: %w", apperr.ErrValidation)
	}
	c := &entities.Crop{
		Name:        name,
		Variety:     in.Variety,
		PlantedDate: in.PlantedDate,
		Status:      entities.CropStatusGrowing,
	}
	if err := s.r.Create(ctx, c); err != nil {
		return 0, err
	}
	return c.ID, nil
}

func (s *cropSvc) ListCrops(ctx context.Context) ([]entities.Crop, error) {
	return s.r.List(ctx)
}
