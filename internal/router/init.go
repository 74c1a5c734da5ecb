package router

import (
	userapp "github.com/oksasatya/user-accounts/internal/application"
	"github.com/oksasatya/user-accounts/internal/container"
	repouser "github.com/oksasatya/user-accounts/internal/domain/repository"
	"github.com/oksasatya/user-accounts/internal/infrastructure/cache"
	"github.com/oksasatya/user-accounts/internal/infrastructure/notify"
	pginfra "github.com/oksasatya/user-accounts/internal/infrastructure/postgres"
	"github.com/oksasatya/user-accounts/internal/infrastructure/search"
	handlers "github.com/oksasatya/user-accounts/internal/interface/http"
	"github.com/oksasatya/user-accounts/internal/router/modules"
)

type UserModuleDeps struct {
	Repo        repouser.UserRepository
	Service     *userapp.UserService
	Auth        *userapp.AuthService
	UserHandler *handlers.UserHandler
	AuthHandler *handlers.AuthHandler
}

// BuildUserService assembles the user service from the container. Redis,
// Elasticsearch and RabbitMQ are used only when they were configured.
func BuildUserService() (*userapp.UserService, repouser.UserRepository, *search.UserIndex) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	var repo repouser.UserRepository = pginfra.NewUserRepository(container.GetPGPool())
	if rdb := container.GetRedis(); rdb != nil && cfg.UserCacheTTL > 0 {
		repo = cache.NewCachingUserRepository(rdb, cfg.UserCacheTTL, repo, logger)
	}

	var (
		index    userapp.UserIndexer
		userIdx  *search.UserIndex
		notifier userapp.UserEvents
	)
	if es := container.GetES(); es != nil && cfg.SearchEnabled {
		userIdx = search.NewUserIndex(es, cfg.ESUsersIndex)
		index = userIdx
	}
	if pub := container.GetRabbitPub(); pub != nil {
		notifier = notify.NewEmailNotifier(pub, cfg)
	}

	svc := userapp.NewUserService(repo, container.GetHasher(), index, notifier, logger)
	return svc, repo, userIdx
}

func buildUserDeps() UserModuleDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	svc, repo, userIdx := BuildUserService()
	auth := userapp.NewAuthService(svc, container.GetHasher(), container.GetJWT(), logger)

	var searcher handlers.UserSearcher
	if userIdx != nil {
		searcher = userIdx
	}

	return UserModuleDeps{
		Repo:        repo,
		Service:     svc,
		Auth:        auth,
		UserHandler: handlers.NewUserHandler(svc, searcher, logger),
		AuthHandler: handlers.NewAuthHandler(auth, logger, cfg.CookieDomain, cfg.CookieSecure),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildUserDeps()
	r.Add(modules.NewAuthModule(deps.AuthHandler))
	r.Add(modules.NewUserModule(deps.UserHandler, container.GetJWT()))
}
