package container

import (
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-registry/config"
	userapp "github.com/oksasatya/go-user-registry/internal/application"
	repouser "github.com/oksasatya/go-user-registry/internal/domain/repository"
	"github.com/oksasatya/go-user-registry/internal/infrastructure/memory"
	"github.com/oksasatya/go-user-registry/pkg/helpers"
	"github.com/oksasatya/go-user-registry/pkg/validation"
)

// Container holds the components shared by the router modules.
// One is built per process in main and passed down explicitly.
type Container struct {
	Config    *config.Config
	Logger    *logrus.Logger
	Validate  *validator.Validate
	Repo      repouser.UserRepository
	Service   *userapp.Service
	RabbitPub *helpers.RabbitPublisher
}

// New builds a container backed by a fresh in-memory store.
// pub may be nil, in which case user events are not published.
func New(cfg *config.Config, logger *logrus.Logger, pub *helpers.RabbitPublisher) *Container {
	v := validation.New()
	repo := memory.NewUserRepository()

	var events userapp.EventPublisher
	if pub != nil {
		events = pub
	}

	return &Container{
		Config:    cfg,
		Logger:    logger,
		Validate:  v,
		Repo:      repo,
		Service:   userapp.NewService(repo, v, logger, events, cfg.UniqueEmailOnUpdate),
		RabbitPub: pub,
	}
}

// Close releases external connections.
func (c *Container) Close() {
	c.RabbitPub.Close()
}
