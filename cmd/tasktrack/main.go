package main

import (
	"context"
	"log/slog"
	"os"

	"tasktrack/config"
	"tasktrack/internal/delivery"
	"tasktrack/internal/delivery/http"
	httpmiddleware "tasktrack/internal/delivery/http/middleware"
	"tasktrack/internal/delivery/http/router/handler"
	"tasktrack/internal/domain/repository"
	"tasktrack/internal/domain/service"
	"tasktrack/internal/errors"
	"tasktrack/internal/infra/auth"
	"tasktrack/internal/infra/httpclient"
	logs "tasktrack/internal/infra/log"
	"tasktrack/internal/infra/persistence/file"
	"tasktrack/internal/infra/persistence/memory"
	"tasktrack/internal/infra/persistence/postgres"
	"tasktrack/internal/infra/persistence/remote"
	"tasktrack/internal/infra/pubsub"
	"tasktrack/internal/usecase"
	"tasktrack/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		pubsub.Module,
		injectUsecase(),
		injectDelivery(),
		injectHandler(),
		fx.Invoke(
			watchTodoEvents,
			startServer,
		),
	).Run()
}

type eventWatchParams struct {
	fx.In

	Logger *slog.Logger
	Events service.TodoEventSource
}

// watchTodoEvents logs every event crossing the in-process bus at debug
// level. Events reach the bus only when the pubsub provider is "bus"; with
// any other provider the subscription simply stays quiet.
func watchTodoEvents(params eventWatchParams) {
	params.Events.Subscribe(func(event *service.TodoEvent) {
		params.Logger.Debug("Todo event",
			slog.String("type", event.Type),
			slog.String("todo_id", event.TodoID),
			slog.String("owner_id", event.OwnerID),
		)
	})
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

type repoParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type repoResult struct {
	fx.Out

	TodoRepo repository.TodoRepository
	UserRepo repository.UserRepository
}

// newRepositories selects the adapter family from config. Every driver
// yields the same two ports, so nothing downstream knows which one runs.
func newRepositories(params repoParams) (repoResult, error) {
	storage := params.Config.Storage

	switch storage.Driver {
	case "", config.StorageDriverMemory:
		return repoResult{
			TodoRepo: memory.NewTodoRepository(),
			UserRepo: memory.NewUserRepository(),
		}, nil

	case config.StorageDriverFile:
		store, err := file.NewStore(storage.Path)
		if err != nil {
			return repoResult{}, err
		}

		return repoResult{
			TodoRepo: file.NewTodoRepository(store),
			UserRepo: file.NewUserRepository(store),
		}, nil

	case config.StorageDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return repoResult{}, err
		}

		return repoResult{
			TodoRepo: postgres.NewTodoRepository(db),
			UserRepo: postgres.NewUserRepository(db),
		}, nil

	case config.StorageDriverRemote:
		if storage.Endpoint == "" {
			return repoResult{}, errors.New("storage endpoint is required for the remote driver")
		}
		client := httpclient.New(storage.Endpoint)

		return repoResult{
			TodoRepo: remote.NewTodoRepository(client),
			UserRepo: remote.NewUserRepository(client),
		}, nil

	default:
		return repoResult{}, errors.Errorf("unknown storage driver: %s", storage.Driver)
	}
}

func injectRepo() fx.Option {
	return fx.Provide(newRepositories)
}

// newPasswordHasher picks the bcrypt cost from config when one is set.
func newPasswordHasher(cfg *config.Config) service.PasswordHasher {
	if cfg.Auth != nil && cfg.Auth.BcryptCost > 0 {
		return auth.NewBcryptHasherWithCost(cfg.Auth.BcryptCost)
	}

	return auth.NewBcryptHasher()
}

func injectService() fx.Option {
	return fx.Provide(
		newPasswordHasher,
		auth.NewRandomTokenSource,
	)
}

type todoUsecaseParams struct {
	fx.In

	TodoRepo  repository.TodoRepository
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// newTodoUsecase wraps the core todo service in the observable decorator
// so subscribers on the bus see every successful mutation.
func newTodoUsecase(params todoUsecaseParams) usecase.TodoUsecase {
	inner := impl.NewTodoService(impl.TodoServiceParams{
		TodoRepo: params.TodoRepo,
		Logger:   params.Logger,
	})

	return impl.NewObservableTodoService(inner, params.Publisher, params.Logger)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		newTodoUsecase,
		impl.NewAuthService,
	)
}

func injectHandler() fx.Option {
	return fx.Provide(
		handler.NewTodoHandler,
		handler.NewUserHandler,
		handler.NewAuthHandler,
		handler.NewAppTodoHandler,
		httpmiddleware.NewAuthMiddleware,
	)
}

func injectDelivery() fx.Option {
	return fx.Provide(
		fx.Annotate(
			http.NewServer,
			fx.ResultTags(`group:"deliveries"`),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
