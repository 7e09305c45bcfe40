package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/plc-dashboard/backend/internal/api"
	"github.com/plc-dashboard/backend/internal/config"
	"github.com/plc-dashboard/backend/internal/normalize"
	"github.com/plc-dashboard/backend/internal/sim"
	"github.com/plc-dashboard/backend/internal/store"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Resolve config next to the executable
	exePath, err := os.Executable()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to get executable path")
	}
	configPath := filepath.Join(filepath.Dir(exePath), "plc-dashboard.yaml")

	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	cfg.InitLogging()

	if err := cfg.EnsureDirectories(); err != nil {
		logrus.WithError(err).Fatal("Failed to create directories")
	}

	// Persistence
	db, err := store.Open(cfg.Storage.DatabaseFile)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to open database")
	}
	defer db.Close()

	// Upload-path normalizer with configured bit synthesis
	norm := normalize.New(normalize.Options{
		SynthesizeMissingBits: true,
		SynthesizedBitCount:   cfg.Normalize.SynthesizedBitCount,
		ChannelSuffixes:       cfg.Normalize.ChannelSuffixes,
	})

	handlers := api.NewHandlers(&api.Dependencies{
		Store:      db,
		Normalizer: norm,
		Version:    Version,
	})

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			if !cfg.Advanced.EnableRequestLogging {
				return true
			}
			path := c.Request().URL.Path
			return path == "/api/health" || strings.Contains(path, "/ws/")
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	if cfg.Server.EnableCORS {
		origins := strings.Split(cfg.Server.AllowOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	api.RegisterRoutes(e, handlers)

	// Mock value feed
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Simulator.Enabled {
		engine := sim.NewEngine(db, handlers.Values,
			time.Duration(cfg.Simulator.IntervalSeconds)*time.Second)
		go engine.Run(ctx)
	}

	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":    cfg.GetServerAddr(),
			"version": Version,
			"built":   BuildTime,
			"config":  configPath,
		}).Info("PLC configuration dashboard listening")
		if err := e.StartServer(s); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}
	logrus.Info("Server exited")
}
