package controller

import "github.com/labstack/echo/v4"

type AdvisoryController interface {
	Advice(c echo.Context) error
	Diagnose(c echo.Context) error
	MarketTrends(c echo.Context) error
}
