package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mrodcosta/PsiPraticaBack/internal/config"
	"github.com/mrodcosta/PsiPraticaBack/internal/handlers"
	"github.com/mrodcosta/PsiPraticaBack/internal/middleware"
	"github.com/mrodcosta/PsiPraticaBack/internal/repository"
	"github.com/mrodcosta/PsiPraticaBack/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	financialRepo := repository.NewFinancialEntryRepository(db)

	patientService := services.NewPatientService(patientRepo)
	sessionService := services.NewSessionService(sessionRepo, patientRepo, financialRepo)
	financialService := services.NewFinancialService(financialRepo)
	dashboardService := services.NewDashboardService(financialService, sessionRepo, patientRepo)

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	patientHandler := handlers.NewPatientHandler(patientService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	financialHandler := handlers.NewFinancialHandler(financialService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	v1 := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	patients := v1.Group("/patients")
	patients.Post("", patientHandler.Create)
	patients.Get("", patientHandler.List)
	patients.Get("/stats", patientHandler.Stats)
	patients.Get("/:id", patientHandler.Get)
	patients.Put("/:id", patientHandler.Update)
	patients.Delete("/:id", patientHandler.Deactivate)
	patients.Post("/:id/activate", patientHandler.Activate)

	sessions := v1.Group("/sessions")
	sessions.Post("", sessionHandler.Schedule)
	sessions.Get("", sessionHandler.List)
	sessions.Get("/:id", sessionHandler.Get)
	sessions.Put("/:id", sessionHandler.Update)
	sessions.Put("/:id/status", sessionHandler.UpdateStatus)

	financial := v1.Group("/financial")
	financial.Get("", financialHandler.List)
	financial.Get("/report", financialHandler.Report)
	financial.Get("/:id", financialHandler.Get)
	financial.Post("/:id/pay", financialHandler.MarkPaid)
	financial.Post("/:id/revert", financialHandler.Revert)

	dashboard := v1.Group("/dashboard")
	dashboard.Get("/summary", dashboardHandler.Summary)
}
