package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agrismart/pkg/apperr"
	"agrismart/pkg/task/controller"
	"agrismart/pkg/task/service"
)

type TaskCtrl struct{ svc service.TaskService }

var _ controller.TaskController = (*TaskCtrl)(nil)

func New(svc service.TaskService) *TaskCtrl { return &TaskCtrl{svc} }

type createReq struct {
	CropID   *int64  `json:"crop_id"`
	TaskName string  `json:"task_name"`
	DueDate  *string `json:"due_date"`
}

type patchReq struct {
	Completed *bool `json:"completed"`
}

func (h *TaskCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	id, err := h.svc.CreateTask(c.Request().Context(), service.NewTask{
		CropID:   req.CropID,
		TaskName: req.TaskName,
		DueDate:  req.DueDate,
	})
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]uint{"id": id})
}

func (h *TaskCtrl) List(c echo.Context) error {
	out, err := h.svc.ListTasks(c.Request().Context())
	if err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TaskCtrl) Patch(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var req patchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Completed == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "completed is required"})
	}
	if err := h.svc.SetCompleted(c.Request().Context(), uint(id), *req.Completed); err != nil {
		return apperr.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
