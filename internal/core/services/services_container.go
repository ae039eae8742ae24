package services

import (
	portsrepo "github.com/SscSPs/hydration_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hydration_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/hydration_tracker_app/internal/platform/config"
)

// Collaborators are the outbound adapters the services depend on.
type Collaborators struct {
	Mailer  portssvc.Mailer
	Storage portssvc.ObjectStorage
	Images  portssvc.ImageProcessor
	Hasher  portssvc.PasswordHasher
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, deps Collaborators) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Token service first: auth depends on it
	container.Token = NewTokenService(cfg, repos.UserRepo)
	container.Auth = NewAuthService(cfg, repos.UserRepo, container.Token, deps.Hasher, deps.Mailer)
	container.User = NewUserService(cfg, repos.UserRepo, deps.Mailer, deps.Storage, deps.Images)
	container.Water = NewWaterService(repos.WaterRepo)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}
