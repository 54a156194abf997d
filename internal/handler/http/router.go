package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hrms-lite/internal/config"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	cfg *config.Config,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	reviewHandler ReviewHandler,
	insightHandler InsightHandler,
	dashboardHandler DashboardHandler,
	eventHandler EventHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-lite"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", SessionHeader},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/dashboard", dashboardHandler.GetDashboard)
		r.Get("/events", eventHandler.Stream)

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", attendanceHandler.ListAttendance)
			r.Get("/today", attendanceHandler.GetTodayAttendance)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.ListEmployees)
			r.With(chiMiddleware.AllowContentType("application/json")).Post("/", employeeHandler.CreateEmployee)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", employeeHandler.GetEmployee)
				r.Delete("/", employeeHandler.DeleteEmployee)

				r.Route("/attendance", func(r chi.Router) {
					r.Get("/", attendanceHandler.ListEmployeeAttendance)
					r.With(chiMiddleware.AllowContentType("application/json")).Put("/", attendanceHandler.MarkAttendance)
				})

				r.Route("/reviews", func(r chi.Router) {
					r.Get("/", reviewHandler.ListReviews)
					r.With(chiMiddleware.AllowContentType("application/json")).Post("/", reviewHandler.AddReview)
				})

				r.Route("/insights", func(r chi.Router) {
					r.Get("/", insightHandler.ListInsights)
					r.Post("/summary", insightHandler.GenerateSummary)
					r.Post("/analysis", insightHandler.GenerateAnalysis)

					r.Route("/draft", func(r chi.Router) {
						r.Get("/", insightHandler.GetDraft)
						r.Delete("/", insightHandler.DiscardDraft)
						r.With(chiMiddleware.AllowContentType("application/json")).Post("/approve", insightHandler.ApproveDraft)
					})
				})
			})
		})
	})
	return r
}
