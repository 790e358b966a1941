package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/you/blogsvc/internal/config"
	httpx "github.com/you/blogsvc/internal/http"
	"github.com/you/blogsvc/internal/http/handlers"
	"github.com/you/blogsvc/internal/http/middleware"
	"github.com/you/blogsvc/internal/infrastructure/auth"
	"github.com/you/blogsvc/internal/infrastructure/cache"
	"github.com/you/blogsvc/internal/infrastructure/database"
	"github.com/you/blogsvc/internal/infrastructure/notifications"
	"github.com/you/blogsvc/internal/infrastructure/queue"
	"github.com/you/blogsvc/internal/infrastructure/repositories"
	"github.com/you/blogsvc/internal/infrastructure/storage"
	"github.com/you/blogsvc/internal/services"
	"github.com/you/blogsvc/internal/worker"
)

// Run wires the API server and blocks serving it. All dependencies are
// constructed here and passed down explicitly.
func Run(cfg *config.Config, logger *zap.Logger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := database.Ping(context.Background(), rdb); err != nil {
		return err
	}

	jobs := queue.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer jobs.Close()

	fileStorage, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return err
	}

	// Infrastructure services
	redisCache := cache.New(rdb)
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	smsSvc := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom, logger)

	// Repositories
	userRepo := repositories.NewUserRepository(gdb)
	otpRepo := repositories.NewOtpRepository(gdb)
	postRepo := repositories.NewPostRepository(gdb)
	productRepo := repositories.NewProductRepository(gdb)
	settingRepo := repositories.NewSettingRepository(gdb)

	// Services
	otpSvc := services.NewOtpService(userRepo, otpRepo, passwordSvc, tokenSvc, smsSvc, services.OtpConfig{
		VerifyWindow:  cfg.OtpVerifyWindow,
		ConfirmWindow: cfg.OtpConfirmWindow,
	})
	authSvc := services.NewAuthService(userRepo, passwordSvc, tokenSvc)

	media := services.MediaConfig{Width: cfg.ImageWidth, Height: cfg.ImageHeight}
	postSvc := services.NewPostService(postRepo, redisCache, jobs, fileStorage, logger, media)
	productSvc := services.NewProductService(productRepo, redisCache, jobs, fileStorage, logger, media)

	// Handlers and middleware
	sanitizer := bluemonday.UGCPolicy()
	authH := handlers.NewAuthHandlers(otpSvc, authSvc, cfg.IsProduction())
	postH := handlers.NewPostHandlers(postSvc, fileStorage, sanitizer, logger)
	productH := handlers.NewProductHandlers(productSvc, fileStorage, sanitizer, logger)
	systemH := handlers.NewSystemHandlers(settingRepo, userRepo)
	authMW := middleware.NewAuthMW(authSvc, tokenSvc, cfg.IsProduction())

	r := httpx.BuildRouter(authH, postH, productH, systemH, authMW, userRepo, settingRepo)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}

// RunWorker wires the background task consumer and blocks serving it.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := database.Ping(context.Background(), rdb); err != nil {
		return err
	}

	fileStorage, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return err
	}

	h := worker.NewHandlers(cache.New(rdb), fileStorage, worker.NewImagingOptimizer(), logger)
	srv := worker.NewServer(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.QueueConcurrency, logger)

	logger.Info("worker started", zap.Int("concurrency", cfg.QueueConcurrency))
	return srv.Run(h.Mux())
}
