package controllerImp

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"agrismart/pkg/apperr"
	cropSvc "agrismart/pkg/crop/service"
	"agrismart/pkg/export"
	taskSvc "agrismart/pkg/task/service"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportCtrl struct {
	crops cropSvc.CropService
	tasks taskSvc.TaskService
}

func New(crops cropSvc.CropService, tasks taskSvc.TaskService) *ExportCtrl {
	return &ExportCtrl{crops: crops, tasks: tasks}
}

func (h *ExportCtrl) Workbook(c echo.Context) error {
	ctx := c.Request().Context()
	crops, err := h.crops.ListCrops(ctx)
	if err != nil {
		return apperr.JSON(c, err)
	}
	tasks, err := h.tasks.ListTasks(ctx)
	if err != nil {
		return apperr.JSON(c, err)
	}
	f, err := export.Workbook(crops, tasks)
	if err != nil {
		return apperr.JSON(c, fmt.Errorf("build workbook: %w", err))
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return apperr.JSON(c, fmt.Errorf("write workbook: %w", err))
	}
	name := fmt.Sprintf("agrismart-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}
