package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/config"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/insight"
	"github.com/cmlabs-hris/hrms-lite/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/hrms-lite/internal/handler/http"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/cron"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/genai"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/utils"
	"github.com/cmlabs-hris/hrms-lite/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/hrms-lite/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hrms-lite/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hrms-lite/internal/service/employee"
	insightService "github.com/cmlabs-hris/hrms-lite/internal/service/insight"
	reviewService "github.com/cmlabs-hris/hrms-lite/internal/service/review"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := utils.SystemClock()
	loc := cfg.Location()

	store := memory.NewStore(clock)
	employeeRepo := memory.NewEmployeeRepository(store)
	attendanceRepo := memory.NewAttendanceRepository(store)
	reviewRepo := memory.NewReviewRepository(store)
	insightRepo := memory.NewInsightRepository(store)

	if cfg.App.SeedDemo {
		if _, err := fixtures.SeedDemoData(ctx, employeeRepo, attendanceRepo, reviewRepo); err != nil {
			log.Fatal("Failed to seed demo data: ", err)
		}
	}

	hub := sse.NewHub()

	var generator insight.Generator
	switch cfg.GenAI.Provider {
	case config.ProviderGemini:
		client, err := genai.NewClient(ctx, cfg.GenAI)
		if err != nil {
			log.Fatal("Failed to initialize Gemini client: ", err)
		}
		generator = client
	default:
		slog.Warn("Using the offline insight generator", "provider", cfg.GenAI.Provider)
		generator = genai.NewStub()
	}

	employeeSvc := employeeService.NewEmployeeService(employeeRepo, hub)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, hub, clock, loc)
	reviewSvc := reviewService.NewReviewService(reviewRepo, hub, clock, loc)
	insightSvc := insightService.NewInsightService(employeeRepo, attendanceRepo, reviewRepo, insightRepo, generator, hub, clock)
	dashboardSvc := dashboardService.NewDashboardService(employeeRepo, attendanceRepo, reviewRepo, insightRepo, clock, loc)

	router := appHTTP.NewRouter(
		cfg,
		appHTTP.NewEmployeeHandler(employeeSvc, dashboardSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewReviewHandler(reviewSvc),
		appHTTP.NewInsightHandler(insightSvc),
		appHTTP.NewDashboardHandler(dashboardSvc),
		appHTTP.NewEventHandler(hub, 30*time.Second),
	)

	scheduler := cron.NewScheduler(ctx)
	cron.NewMaintenanceJobs(insightSvc, store, cfg.Drafts.TTL, cfg.Drafts.SweepInterval).RegisterJobs(scheduler)
	scheduler.Start()

	// Request contexts derive from ctx so open event streams end on shutdown.
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server running", "addr", "http://localhost"+server.Addr, "env", cfg.App.Env, "genai_provider", cfg.GenAI.Provider)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		slog.Info("Shutting down server")
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	scheduler.Stop()
	if err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
