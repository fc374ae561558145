package router

import (
	"github.com/gatherly/events-api/internal/application"
	"github.com/gatherly/events-api/internal/container"
	pginfra "github.com/gatherly/events-api/internal/infrastructure/postgres"
	handlers "github.com/gatherly/events-api/internal/interface/http"
	"github.com/gatherly/events-api/internal/router/modules"
)

// InitModules builds repositories, services and handlers from the container
// singletons and registers every feature module. Called once at startup.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	cfg := container.GetConfig()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(pool)
	events := pginfra.NewEventRepository(pool)
	registrations := pginfra.NewRegistrationRepository(pool)

	authSvc := application.NewAuthService(users, container.GetJWT(), logger)
	eventSvc := application.NewEventService(events, users, logger)

	// Keep the interface nil when no publisher was configured, so the
	// service's nil check works on the interface value itself.
	var pub application.JobPublisher
	if rp := container.GetRabbitPub(); rp != nil {
		pub = rp
	}
	regSvc := application.NewRegistrationService(
		registrations, events, users,
		pub, logger, cfg.MailSendEnabled,
	)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewEventModule(
		handlers.NewEventHandler(eventSvc, logger),
		handlers.NewRegistrationHandler(regSvc, logger),
		container.GetJWT(),
	))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
