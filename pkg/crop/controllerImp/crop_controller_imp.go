package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agrismart/pkg/apperr"
	"agrismart/pkg/crop/controller"
	"agrismart/pkg/crop/service"
)

type CropCtrl struct{ svc service.CropService }

var _ controller.CropController = (*CropCtrl)(nil)

func New(svc service.CropService) *CropCtrl { return &CropCtrl{svc} }

type createReq struct {
	Name        string  `json:"name"`
	Variety     *string `json:"variety"`
	PlantedDate *string `json:"planted_date"`
}

func (h *CropCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	id, err := h.svc.CreateCrop(c.Request().Context(), service.NewCrop{
		Name:        req.Name,
		Variety:     req.Variety,
		PlantedDate: req.PlantedDate,
	})
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]uint{"id": id})
}

func (h *CropCtrl) List(c echo.Context) error {
	out, err := h.svc.ListCrops(c.Request().Context())
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
