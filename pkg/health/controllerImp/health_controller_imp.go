package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

var appStart = time.Now()

// Pinger is satisfied by the store handle.
type Pinger interface {
	Ping(ctx context.Context) error
	Driver() string
}

type HealthCtrl struct {
	store Pinger
}

func NewHealthCtrl(store Pinger) *HealthCtrl { return &HealthCtrl{store: store} }

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	dbOK := true
	dbErr := ""
	driver := ""
	if h.store != nil {
		driver = h.store.Driver()
		if err := h.store.Ping(ctx); err != nil {
			dbOK = false
			dbErr = "ping: " + err.Error()
		}
	} else {
		dbOK = false
		dbErr = "store is nil"
	}

	status := http.StatusOK
	if !dbOK {
		status = http.StatusServiceUnavailable
	}

	type sub struct {
		OK     bool   `json:"ok"`
		Driver string `json:"driver,omitempty"`
		Err    string `json:"err,omitempty"`
	}

	resp := map[string]any{
		"status":     map[string]any{"ok": dbOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database": sub{OK: dbOK, Driver: driver, Err: dbErr},
		},
		"time": time.Now().Format(time.RFC3339),
	}

	return c.JSON(status, resp)
}
