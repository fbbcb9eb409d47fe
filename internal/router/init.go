package router

import (
	"github.com/oksasatya/go-user-registration/internal/application"
	"github.com/oksasatya/go-user-registration/internal/container"
	handlers "github.com/oksasatya/go-user-registration/internal/interface/http"
	"github.com/oksasatya/go-user-registration/internal/router/modules"
)

type RegistrationModuleDeps struct {
	Service *application.RegistrationService
	Handler *handlers.RegistrationHandler
}

func buildRegistrationDeps() RegistrationModuleDeps {
	service := application.NewRegistrationService(application.RegistrationRules())

	handler := handlers.NewRegistrationHandler(
		service,
		container.GetViews(),
		container.GetMetrics(),
		container.GetLogger(),
	)

	return RegistrationModuleDeps{
		Service: service,
		Handler: handler,
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildRegistrationDeps()
	r.Add(modules.NewRegistrationModule(deps.Handler))
	r.Add(modules.NewHealthModule())
	if cfg := container.GetConfig(); cfg != nil && cfg.MetricsEnabled {
		r.Add(modules.NewDebugModule(container.GetGatherer()))
	}
}
