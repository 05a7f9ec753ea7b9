package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/http/handlers"
	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/gate"
	"github.com/spec-kit/job-board/internal/validation"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Prefix         string
	UploadsPrefix  string
	UploadsDir     string
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Jobs           *handlers.JobsHandler
	Applications   *handlers.ApplicationsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
	Validator      *validation.Validator
	// LoginLimiter throttles login attempts; nil disables throttling.
	LoginLimiter gate.Stage
	// LoginReset wraps the login route and forgets the client's attempts after a success.
	LoginReset fiber.Handler
}

// RegisterRoutes wires HTTP routes. Every resource route runs its gate first:
// authenticate, then authorize, then validate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.UploadsDir != "" && cfg.UploadsPrefix != "" {
		app.Static(cfg.UploadsPrefix, cfg.UploadsDir)
	}

	api := app.Group(cfg.Prefix)
	authn := cfg.AuthMiddleware.Authenticate
	admin := auth.RequireRole(domain.RoleAdmin)
	validate := cfg.Validator.Stage

	api.Get("/health/live", cfg.Health.Live)
	api.Get("/health/ready", cfg.Health.Ready)
	api.Get("/health/metrics", cfg.Health.Metrics)

	users := cfg.Users
	api.Post("/auth/register", gate.Chain(validate(validation.Register)), users.Register)
	login := []fiber.Handler{gate.Chain(cfg.LoginLimiter, validate(validation.Login)), users.Login}
	if cfg.LoginReset != nil {
		login = append([]fiber.Handler{cfg.LoginReset}, login...)
	}
	api.Post("/auth/login", login...)
	api.Get("/auth/status", gate.Chain(cfg.AuthMiddleware.AuthenticateOptional), users.Status)
	api.Get("/auth/me", gate.Chain(authn), users.Me)
	api.Put("/auth/password/change", gate.Chain(authn, validate(validation.ChangePassword)), users.ChangePassword)
	api.Put("/auth/profile/update", gate.Chain(authn, validate(validation.UpdateProfile)), users.UpdateProfile)
	api.Delete("/auth/account/delete", gate.Chain(authn, validate(validation.DeleteAccount)), users.DeleteAccount)

	jobs := cfg.Jobs
	api.Post("/job/create", gate.Chain(authn, admin, validate(validation.Job)), jobs.Create)
	api.Get("/jobs", gate.Chain(), jobs.List)
	api.Get("/job/:id", gate.Chain(validate(validation.JobID)), jobs.Get)
	api.Post("/job/save/:id", gate.Chain(authn, validate(validation.JobID)), jobs.ToggleSave)
	api.Get("/user/saved-jobs", gate.Chain(authn), jobs.SavedJobs)

	apps := cfg.Applications
	api.Post("/createApplication/:id", gate.Chain(authn, validate(validation.JobID)), apps.Create)
	api.Get("/singleApplication/:id", gate.Chain(authn, validate(validation.ApplicationID)), apps.Single)
	api.Get("/user/applications", gate.Chain(authn), apps.Mine)
	api.Delete("/deleteApplication/:id", gate.Chain(authn, validate(validation.ApplicationID)), apps.Delete)

	adm := cfg.Admin
	adminGate := func(rules validation.RuleSet) fiber.Handler {
		return gate.Chain(authn, admin, validate(rules))
	}
	api.Get("/admin/allJobs", adminGate(nil), adm.AllJobs)
	api.Get("/admin/getJob/:id", adminGate(validation.JobID), adm.GetJob)
	api.Put("/admin/updateJob/:id", adminGate(validation.UpdateJob), adm.UpdateJob)
	api.Delete("/admin/deleteJob/:id", adminGate(validation.JobID), adm.DeleteJob)

	api.Get("/admin/allUsers", adminGate(nil), adm.AllUsers)
	api.Get("/admin/getUser/:id", adminGate(validation.UserID), adm.GetUser)
	api.Put("/admin/updateUser/:id", adminGate(validation.UpdateUserRole), adm.UpdateUser)
	api.Delete("/admin/deleteUser/:id", adminGate(validation.UserID), adm.DeleteUser)

	api.Get("/admin/allApplications", adminGate(nil), adm.AllApplications)
	api.Get("/admin/getApplication/:id", adminGate(validation.ApplicationID), adm.GetApplication)
	api.Put("/admin/updateApplication/:id", adminGate(validation.UpdateApplicationStatus), adm.UpdateApplication)
	api.Delete("/admin/deleteApplication/:id", adminGate(validation.ApplicationID), adm.DeleteApplication)
}
