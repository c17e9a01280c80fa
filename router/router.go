package router

import (
	"path/filepath"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	advisoryController "agrismart/pkg/advisory/controller"
	cropController "agrismart/pkg/crop/controller"
	kbController "agrismart/pkg/kb/controller"
	"agrismart/pkg/middleware"
	taskController "agrismart/pkg/task/controller"
)

func New(
	e *echo.Echo,
	staticDir string,
	cropCtrl cropController.CropController,
	taskCtrl taskController.TaskController,
	advisoryCtrl advisoryController.AdvisoryController,
	kbCtrl kbController.KBController,
	exportCtrl interface{ Workbook(echo.Context) error },
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.AccessLog("/health"))
	// base64 photos for /api/diagnose
	e.Use(echoMiddleware.BodyLimit("12M"))

	e.GET("/health", healthCtrl.Health)

	api := e.Group("/api")

	api.GET("/crops", cropCtrl.List)
	api.POST("/crops", cropCtrl.Create)

	api.GET("/tasks", taskCtrl.List)
	api.POST("/tasks", taskCtrl.Create)
	api.PATCH("/tasks/:id", taskCtrl.Patch)

	api.POST("/advice", advisoryCtrl.Advice)
	api.POST("/diagnose", advisoryCtrl.Diagnose)
	api.GET("/market-trends", advisoryCtrl.MarketTrends)

	api.POST("/kb/ingest", kbCtrl.IngestText)
	api.POST("/kb/ingest/url", kbCtrl.IngestURL)
	api.GET("/kb/search", kbCtrl.Search)

	api.GET("/export.xlsx", exportCtrl.Workbook)

	if staticDir != "" {
		e.Static("/static", staticDir)
		e.File("/", filepath.Join(staticDir, "index.html"))
	}
	return e
}
