package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Guyuepp/conduit-feed/internal/config"
	"github.com/Guyuepp/conduit-feed/internal/counter"
	"github.com/Guyuepp/conduit-feed/internal/feed"
	"github.com/Guyuepp/conduit-feed/internal/repository"
	mysqlRepo "github.com/Guyuepp/conduit-feed/internal/repository/mysql"
	redisRepo "github.com/Guyuepp/conduit-feed/internal/repository/redis"
	"github.com/Guyuepp/conduit-feed/internal/rest"
	"github.com/Guyuepp/conduit-feed/internal/rest/middleware"
	"github.com/Guyuepp/conduit-feed/internal/usecase/article"
	"github.com/Guyuepp/conduit-feed/internal/usecase/comment"
	"github.com/Guyuepp/conduit-feed/internal/usecase/profile"
	"github.com/Guyuepp/conduit-feed/internal/usecase/viewer"
	"github.com/Guyuepp/conduit-feed/internal/workers"
)

const (
	shutdownTimeout  = 5 * time.Second
	reconcileTimeout = 5 * time.Minute
)

var (
	envFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:           "conduit-feed",
	Short:         "Article feed and social graph service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(envFile); err != nil {
			return err
		}
		return cfg.SetupLogger()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeDB(db)

		if err := mysqlRepo.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logrus.Info("schema is up to date")
		return nil
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Re-derive every denormalized counter once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeDB(db)

		counterSvc := counter.NewService(
			mysqlRepo.NewTransactor(db),
			mysqlRepo.NewRelationRepository(db),
			mysqlRepo.NewCounterRepository(db),
			nil,
		)
		return workers.NewReconcileWorker(counterSvc, 0, reconcileTimeout).RunOnce(cmd.Context())
	},
}

var (
	tokenUserID int64
	tokenTTL    time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a signed token for a user id, for local testing",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.JWTSecret == "" {
			return errors.New("JWT_SECRET is not set")
		}
		tok, err := middleware.NewToken(cfg.JWTSecret, tokenUserID, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file")
	tokenCmd.Flags().Int64Var(&tokenUserID, "user-id", 0, "user id to sign")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("user-id")

	rootCmd.AddCommand(serveCmd, migrateCmd, reconcileCmd, tokenCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB(db)

	if cfg.DatabaseDriver == config.DriverSQLite {
		// 本地开发: 启动时自动建表
		if err := mysqlRepo.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	client, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			logrus.Errorf("got error when closing the cache connection: %v", err)
		}
	}()

	// Prepare Repository
	tx := mysqlRepo.NewTransactor(db)
	userRepo := mysqlRepo.NewUserRepository(db)
	articleRepo := mysqlRepo.NewArticleRepository(db)
	commentRepo := mysqlRepo.NewCommentRepository(db)
	relationRepo := mysqlRepo.NewRelationRepository(db)
	counterRepo := mysqlRepo.NewCounterRepository(db)

	// Tag 三层: DB层, Cache层, 协调层
	tagRepo := repository.NewTagRepository(mysqlRepo.NewTagRepository(db), redisRepo.NewTagCache(client))
	relationCache := redisRepo.NewRelationCache(client)
	bloomRepo := repository.NewGuardedBloom(redisRepo.NewSlugBloom(client, cfg.BloomFilterSize))

	// Build service Layer
	counterSvc := counter.NewService(tx, relationRepo, counterRepo, relationCache)
	members := viewer.NewMembership(relationRepo, relationCache)
	builder := feed.NewBuilder(userRepo, relationRepo)

	articleSvc := article.NewService(tx, articleRepo, userRepo, tagRepo, counterSvc, builder, members, bloomRepo)
	profileSvc := profile.NewService(userRepo, counterSvc, members)
	commentSvc := comment.NewService(commentRepo, articleRepo, userRepo, bloomRepo)

	// Prepare bloom filter
	if err := articleSvc.InitBloomFilter(ctx); err != nil {
		return fmt.Errorf("failed to init bloom filter: %w", err)
	}

	// Start worker
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	reconciler := workers.NewReconcileWorker(counterSvc, cfg.ReconcileInterval, reconcileTimeout)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		reconciler.Start(workerCtx)
	}()

	if cfg.JWTSecret == "" {
		logrus.Warn("JWT_SECRET is empty, every authenticated request will be rejected")
	}

	// prepare gin
	route := gin.New()
	route.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(),
		middleware.Metrics(),
		middleware.CORS(cfg.Origins()),
		middleware.SetRequestContextWithTimeout(cfg.ContextTimeout),
	)
	route.GET("/metrics", gin.WrapH(promhttp.Handler()))
	route.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rest.Routes{
		Articles:  rest.NewArticleHandler(articleSvc),
		Profiles:  rest.NewProfileHandler(profileSvc),
		Comments:  rest.NewCommentHandler(commentSvc),
		JWTSecret: cfg.JWTSecret,
		Limiter:   middleware.NewKeyedLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}.Register(route)

	// Start Server
	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           route,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logrus.Infof("Server is running on %s", cfg.ServerAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// shutdown
	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		logrus.Info("Shutdown signal received, stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logrus.Info("Waiting for worker to cleanup...")
	stopWorker()
	<-workerDone
	logrus.Info("Server exiting")
	return nil
}
