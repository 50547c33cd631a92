package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/littlesprouts/daycare-backend-go/internal/handler/http/middleware"
	"github.com/littlesprouts/daycare-backend-go/internal/pkg/jwt"
)

func NewLogger(env string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "daycare-backend"),
		slog.String("env", env),
	)
}

func NewRouter(
	logger *slog.Logger,
	jwtService jwt.Service,
	employeeHandler EmployeeHandler,
	timesheetHandler TimesheetHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Get("/{id}", employeeHandler.Get)
				r.Get("/{id}/timesheets", timesheetHandler.ListByEmployee)
				r.Get("/{id}/ytd", payrollHandler.GetEmployeeYTD)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminRequired())
					r.Post("/", employeeHandler.Create)
					r.Put("/{id}/active", employeeHandler.SetActive)
				})
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.Post("/", timesheetHandler.Create)
				r.Get("/unapproved-count", timesheetHandler.UnapprovedCount)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminRequired())
					r.Post("/{id}/approve", timesheetHandler.Approve)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/periods", payrollHandler.ListPeriods)
				r.Get("/periods/{id}", payrollHandler.GetPeriod)
				r.Get("/periods/{id}/records", payrollHandler.ListRecords)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminRequired())
					r.Post("/periods", payrollHandler.CreatePeriod)
					r.Post("/periods/{id}/run", payrollHandler.RunPeriod)
					r.Post("/periods/{id}/close", payrollHandler.ClosePeriod)
				})
			})
		})
	})

	return r
}
