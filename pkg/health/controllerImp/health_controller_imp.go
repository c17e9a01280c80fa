package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type HealthCtrl struct {
	db      *gorm.DB
	started time.Time
	llmMode string
}

// NewHealthCtrl reports llmMode ("gemini" or "mock") alongside the db check.
func NewHealthCtrl(db *gorm.DB, llmMode string) *HealthCtrl {
	return &HealthCtrl{db: db, started: time.Now(), llmMode: llmMode}
}

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := check{OK: true}
	if h.db == nil {
		db = check{Err: "gorm db is nil"}
	} else if sqlDB, err := h.db.DB(); err != nil {
		db = check{Err: "db.DB(): " + err.Error()}
	} else if err := sqlDB.PingContext(ctx); err != nil {
		db = check{Err: "ping: " + err.Error()}
	}

	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": db.OK},
		"uptime_sec": int(time.Since(h.started).Seconds()),
		"checks": map[string]any{
			"database": db,
		},
		"advisory": h.llmMode,
		"time":     time.Now().Format(time.RFC3339),
	})
}
