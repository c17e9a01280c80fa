package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"agrismart/config"
	"agrismart/database"
	"agrismart/router"

	// Crop
	cropCtrlImp "agrismart/pkg/crop/controllerImp"
	cropRepoImp "agrismart/pkg/crop/repositoryImp"
	cropSvcImp "agrismart/pkg/crop/serviceImp"

	// Task
	taskCtrlImp "agrismart/pkg/task/controllerImp"
	taskRepoImp "agrismart/pkg/task/repositoryImp"
	taskSvcImp "agrismart/pkg/task/serviceImp"

	// KB
	kbCtrlImp "agrismart/pkg/kb/controllerImp"
	"agrismart/pkg/kb/embedder"
	kbRepoImp "agrismart/pkg/kb/repositoryImp"
	kbSvcImp "agrismart/pkg/kb/serviceImp"

	// Advisory
	advCtrlImp "agrismart/pkg/advisory/controllerImp"
	advSvcImp "agrismart/pkg/advisory/serviceImp"
	"agrismart/pkg/ai"

	exportCtrlImp "agrismart/pkg/export/controllerImp"
	healthCtrlImp "agrismart/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + schema
	db, err := database.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("[db] %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("[db] close: %v", err)
		}
	}()

	// 3) LLM (mock fallback)
	var llm ai.Client
	if cfg.GeminiAPIKey != "" {
		llm = ai.NewGemini(cfg.GeminiEndpoint, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AdvisoryTimeout)
	} else {
		log.Printf("[ai] GEMINI_API_KEY not set, using mock advisor")
		llm = ai.NewMock()
	}

	// 4) Repos/Services/Controllers
	cropSvc := cropSvcImp.NewCropService(cropRepoImp.New(db))
	taskSvc := taskSvcImp.NewTaskService(taskRepoImp.New(db))
	var emb kbSvcImp.Embedder
	if cfg.GeminiAPIKey != "" {
		emb = embedder.New(cfg.GeminiEndpoint, cfg.GeminiAPIKey, cfg.EmbedModel, cfg.AdvisoryTimeout)
	}
	kbSvc := kbSvcImp.New(kbRepoImp.New(db), emb)
	advSvc := advSvcImp.New(llm, cropSvc, taskSvc, kbSvc, cfg.AdvisoryTimeout)

	cropCtrl := cropCtrlImp.New(cropSvc)
	taskCtrl := taskCtrlImp.New(taskSvc)
	kbCtrl := kbCtrlImp.New(kbSvc, cfg.KBAllowed, cfg.KBMaxBytes)
	advCtrl := advCtrlImp.New(advSvc)
	expCtrl := exportCtrlImp.New(cropSvc, taskSvc)
	hCtrl := healthCtrlImp.NewHealthCtrl(db, cfg.LLMMode())

	// 5) Echo + routes
	e := echo.New()
	e.HideBanner = true
	if _, err := os.Stat(filepath.Join(cfg.StaticDir, "index.html")); err != nil {
		log.Printf("WARN: %s/index.html not found: %v", cfg.StaticDir, err)
	}
	router.New(e, cfg.StaticDir, cropCtrl, taskCtrl, advCtrl, kbCtrl, expCtrl, hCtrl)

	// 6) Start, stop on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on :%s", cfg.Port)
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case <-ctx.Done():
		log.Printf("shutdown requested")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server stopped: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
