package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agrismart/pkg/advisory/controller"
	"agrismart/pkg/advisory/service"
	"agrismart/pkg/apperr"
)

type AdvisoryCtrl struct{ s service.AdvisoryService }

var _ controller.AdvisoryController = (*AdvisoryCtrl)(nil)

func New(s service.AdvisoryService) *AdvisoryCtrl { return &AdvisoryCtrl{s} }

type adviceReq struct {
	Query   string         `json:"query"`
	Context map[string]any `json:"context"`
}

type diagnoseReq struct {
	Image    string `json:"image"`
	MimeType string `json:"mime_type"`
}

func (h *AdvisoryCtrl) Advice(c echo.Context) error {
	var req adviceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	answer, err := h.s.Advice(c.Request().Context(), req.Query, req.Context)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"answer": answer})
}

func (h *AdvisoryCtrl) Diagnose(c echo.Context) error {
	var req diagnoseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.s.Diagnose(c.Request().Context(), req.Image, req.MimeType)
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdvisoryCtrl) MarketTrends(c echo.Context) error {
	out, err := h.s.MarketTrends(c.Request().Context())
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
