package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/adamitejs/service-auth/internal/access"
	"github.com/adamitejs/service-auth/internal/api/command"
	grpcctx "github.com/adamitejs/service-auth/internal/api/grpc/context"
	grpcRouter "github.com/adamitejs/service-auth/internal/api/grpc/router"
	grpcServer "github.com/adamitejs/service-auth/internal/api/grpc/server"
	httpRouter "github.com/adamitejs/service-auth/internal/api/http/router"
	httpServer "github.com/adamitejs/service-auth/internal/api/http/server"
	"github.com/adamitejs/service-auth/internal/config"
	"github.com/adamitejs/service-auth/internal/logger"
	"github.com/adamitejs/service-auth/internal/model"
	"github.com/adamitejs/service-auth/internal/password"
	"github.com/adamitejs/service-auth/internal/repository/document"
	"github.com/adamitejs/service-auth/internal/repository/postgres"
	"github.com/adamitejs/service-auth/internal/repository/sqlite"
	"github.com/adamitejs/service-auth/internal/server"
	"github.com/adamitejs/service-auth/internal/service"
	"github.com/adamitejs/service-auth/internal/storage/file"
	"github.com/adamitejs/service-auth/internal/storage/memory"
	storage "github.com/adamitejs/service-auth/internal/storage/minio"
	"github.com/adamitejs/service-auth/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	userStore, closeStore, err := openUserStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", "driver", cfg.Database.Driver, "error", err)
	}
	defer closeStore()

	hasher, err := password.NewHasher(password.Options{
		Algorithm:  cfg.Password.Algorithm,
		BcryptCost: cfg.Password.Cost,
		Argon2: password.Argon2Params{
			Time:   cfg.KDF.Time,
			MemKiB: cfg.KDF.MemKiB,
			Par:    cfg.KDF.Par,
		},
		Workers: cfg.Password.Workers,
	})
	if err != nil {
		logger.Fatal("failed to initialize password hasher", "error", err)
	}
	logger.Info("password hasher initialized", "algorithm", hasher.Algorithm())

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	gate := access.New(cfg.AdminSecret)
	if cfg.AdminSecret == "" {
		logger.Warn("ADMIN_SECRET is not set, admin commands are disabled")
	}

	authService := service.NewAuth(userStore, hasher, tokenManager, gate, logger)

	dispatcher := command.NewDispatcher(logger)
	command.RegisterAuth(dispatcher, authService, gate)

	ctxMgr := grpcctx.NewManager()
	servers := []model.Server{
		registerGRPCServer(logger, dispatcher, gate, ctxMgr, fmt.Sprintf(":%s", cfg.GRPC.Port)),
	}
	if cfg.HTTP.Enabled {
		servers = append(servers, registerHTTPServer(logger, dispatcher, authService, cfg.HTTP.TrustProxy, fmt.Sprintf(":%s", cfg.HTTP.Port)))
	}

	sl := server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "address", s.Address(), "error", err)
				stop()
			}
		}(s)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

// openUserStore opens the credential store selected by DATABASE_DRIVER and
// applies pending migrations. The returned func releases it.
func openUserStore(ctx context.Context, cfg *config.Config) (model.UserStore, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewUserRepository(db), func() { _ = db.Close() }, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Database.Path)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewUserRepository(db), func() { _ = db.Close() }, nil

	case config.DriverDocument:
		blobs, err := openDocumentStorage(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		store := document.New(blobs, cfg.Document.Key)
		if err := store.Load(ctx); err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

func openDocumentStorage(ctx context.Context, cfg *config.Config) (model.Storage, error) {
	switch cfg.Document.Backend {
	case config.BackendFile:
		return file.New(cfg.Document.Path)

	case config.BackendMinio:
		minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
			Secure: cfg.Storage.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		return storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)

	case config.BackendMemory:
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("unknown document backend %q", cfg.Document.Backend)
	}
}

func registerGRPCServer(
	logger *logger.Logger,
	dispatcher *command.Dispatcher,
	gate model.AccessGate,
	ctxMgr model.ContextManager,
	addr string,
) *grpcServer.GRPCServer {
	r := grpcRouter.New(dispatcher, gate, ctxMgr, logger)
	return grpcServer.NewGRPCServer(r.Register(), addr)
}

func registerHTTPServer(
	logger *logger.Logger,
	dispatcher *command.Dispatcher,
	authService *service.Auth,
	trustProxy bool,
	addr string,
) *httpServer.HTTPServer {
	r := httpRouter.New(dispatcher, authService, trustProxy, logger)
	return httpServer.NewHTTPServer(r.Register(), addr)
}
