package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/RostianaElla/caihealth/internal/config"
	redrepo "github.com/RostianaElla/caihealth/internal/repo/redis"
	sessionsvc "github.com/RostianaElla/caihealth/internal/services/session"
	taskssvc "github.com/RostianaElla/caihealth/internal/services/tasks"
	tipssvc "github.com/RostianaElla/caihealth/internal/services/tips"
	"github.com/RostianaElla/caihealth/internal/transport/http/handlers"
)

type Dependencies struct {
	Controller   *sessionsvc.Controller
	TasksService *taskssvc.Service
	TipsService  *tipssvc.Service
	ProgressRepo *redrepo.ProgressRepo
	Logger       *zap.Logger
	Config       config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	sessionHandler := handlers.NewSessionHandler(deps.Controller)
	bindingHandler := handlers.NewBindingHandler(deps.Controller)
	onboardingHandler := handlers.NewOnboardingHandler(deps.Controller)
	dashboardHandler := handlers.NewDashboardHandler(deps.Controller, deps.TasksService, deps.TipsService, deps.ProgressRepo)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/session", sessionHandler.Get)
		r.Post("/session/logout", sessionHandler.Logout)

		r.Route("/bindings", func(r chi.Router) {
			r.Post("/", bindingHandler.Begin)
			r.Post("/{id}/confirm", bindingHandler.Confirm)
			r.Post("/{id}/cancel", bindingHandler.Cancel)
		})

		r.Route("/onboarding", func(r chi.Router) {
			r.Post("/start", onboardingHandler.Start)
			r.Get("/step", onboardingHandler.Step)
			r.Post("/answer", onboardingHandler.Answer)
			r.Post("/continue", onboardingHandler.Continue)
			r.Post("/back", onboardingHandler.Back)
			r.Get("/target", onboardingHandler.Target)
			r.Post("/notifications", onboardingHandler.Notifications)
			r.Post("/sign-in", onboardingHandler.SignIn)
			r.Post("/trial/dismiss", onboardingHandler.DismissTrial)
			r.Post("/complete", onboardingHandler.Complete)
			r.Post("/abort", onboardingHandler.Abort)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", dashboardHandler.Get)
			r.Get("/tips", dashboardHandler.Tips)
			r.Post("/tasks/{id}/toggle", dashboardHandler.ToggleTask)
			r.Post("/weight", dashboardHandler.RecordWeight)
		})
	})
}
