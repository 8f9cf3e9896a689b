package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"placement/config"
	"placement/pkg/middleware"
	"placement/router"
	"placement/store"

	// Health
	healthCtrlImp "placement/pkg/health/controllerImp"

	// Question
	questionCtrlImp "placement/pkg/question/controllerImp"
	questionSvc "placement/pkg/question/serviceImp"
)

func main() {
	// 1) Config + logging
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2) Store (sqlite or mongo)
	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	// 3) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))
	e.Use(middleware.RequestLog(logger))

	// 4) Services/Controllers
	qSvc := questionSvc.New(st.Questions, st.Companies, logger)
	qCtrl := questionCtrlImp.New(qSvc, logger)
	hCtrl := healthCtrlImp.NewHealthCtrl(st)

	// 5) Router
	r := router.New(e, qCtrl, hCtrl)

	// 6) Start
	go func() {
		log.Printf("listening on :%s (store=%s)", cfg.Port, st.Driver())
		if err := r.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
