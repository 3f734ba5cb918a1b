package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"scanmenu-platform/internal/config"
	"scanmenu-platform/internal/handler"
	"scanmenu-platform/internal/metrics"
	"scanmenu-platform/internal/middleware"
	"scanmenu-platform/internal/repository"
	"scanmenu-platform/internal/service"
	"scanmenu-platform/pkg/database"
	auth "scanmenu-platform/pkg/jwt"
	"scanmenu-platform/pkg/logger"
	"scanmenu-platform/pkg/redis"
	"scanmenu-platform/pkg/storage"
	"syscall"
	"time"

	_ "scanmenu-platform/docs"

	"github.com/gin-gonic/gin"
	redisClient "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title 扫码菜单 API
// @version 1.0
// @description 餐厅 PDF 菜单分享链接、扫码跳转与访问统计服务
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Println("配置加载失败:", err)
		os.Exit(1)
	}

	logger.InitLogger(logger.Options{Level: cfg.Log.Level, Filename: cfg.Log.Filename})
	defer func() {
		if err := logger.Logger.Sync(); err != nil {
			fmt.Println("日志同步失败:", err)
		}
	}()
	sugaredLogger := zap.S()

	db, err := database.InitMySQL(database.Options{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		Name:         cfg.Database.Name,
		Charset:      cfg.Database.Charset,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		Debug:        cfg.App.Mode != "production",
	})
	if err != nil {
		sugaredLogger.Fatalf("数据库初始化失败: %v", err)
	}
	sugaredLogger.Info("✅ 数据库连接成功")

	if err := database.Migrate(db); err != nil {
		sugaredLogger.Fatalf("数据库迁移失败: %v", err)
	}
	sugaredLogger.Info("✅ 数据库迁移成功")

	var rdb *redisClient.Client
	if cfg.Cache.Host != "" {
		rdb, err = redis.NewRedisClient(&redis.Options{
			Host: cfg.Cache.Host, Port: cfg.Cache.Port, Password: cfg.Cache.Password, DB: cfg.Cache.DB,
		})
		if err != nil {
			// Redis 不可用时退化为本地缓存和内存限流
			sugaredLogger.Warnf("缓存连接失败: %v", err)
			rdb = nil
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					sugaredLogger.Errorf("关闭 Redis 连接失败: %v", err)
				}
			}()
			sugaredLogger.Info("✅ 缓存连接成功")
		}
	}
	slugCache := redis.NewCache(rdb, cfg.Cache.LocalSize)

	users := repository.NewUserRepository(db)
	restaurants := repository.NewRestaurantRepository(db)
	menus := repository.NewMenuRepository(db)
	links := repository.NewLinkRepository(db)
	visits := repository.NewVisitRepository(db)

	plans := service.NewPlans(repository.NewPlanRepository(db), repository.NewSubscriptionRepository(db),
		repository.NewUsageRepository(db), sugaredLogger.Named("plans"))
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	err = plans.Seed(seedCtx)
	cancelSeed()
	if err != nil {
		sugaredLogger.Fatalf("写入内置套餐失败: %v", err)
	}
	sugaredLogger.Info("✅ 内置套餐检查完成")

	registry := service.NewLinkRegistry(links, menus, sugaredLogger.Named("registry"),
		service.WithCache(slugCache),
		service.WithMaxAttempts(cfg.Tracking.MaxSlugTries),
	)
	recorder := service.NewVisitRecorder(links, visits, cfg.Tracking.IPSalt, cfg.Tracking.RecordTimeout, sugaredLogger.Named("visits"))
	analytics := service.NewAnalytics(links, menus, visits, sugaredLogger.Named("analytics"))

	purger := service.NewRetentionPurger(visits, redis.NewLocker(rdb),
		cfg.Tracking.Retention, cfg.Tracking.PurgeBatch, cfg.Tracking.PurgeSchedule, sugaredLogger.Named("retention"))
	if err := purger.Start(); err != nil {
		sugaredLogger.Fatalf("清理任务启动失败: %v", err)
	}
	defer purger.Stop()
	sugaredLogger.Info("✅ 访问记录清理任务已启动")

	tokenManager := auth.NewManager(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.ExpirationHours)
	sugaredLogger.Info("✅ 认证管理器初始化成功")

	storageOpts := storage.Options{
		Region:          cfg.Storage.Region,
		Bucket:          cfg.Storage.Bucket,
		Endpoint:        cfg.Storage.Endpoint,
		PublicBaseURL:   cfg.Storage.PublicBaseURL,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		AccessKeySecret: cfg.Storage.AccessKeySecret,
		UploadExpiry:    cfg.Storage.UploadExpiry,
	}
	var presigner handler.Presigner
	if storageClient, err := storage.NewClient(storageOpts); err != nil {
		sugaredLogger.Warnf("对象存储未启用: %v", err)
	} else {
		presigner = storageClient
	}

	if cfg.App.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.GinZapRecovery(logger.Logger, true))
	router.Use(middleware.GinZapLogger(logger.Logger))
	router.Use(middleware.Metrics(cfg.App.Name))
	router.Use(middleware.RateLimit(rdb, &cfg.RateLimit))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	owner := handler.NewOwnership(restaurants, menus, links)
	viewer := handler.NewViewerHandler(registry, recorder, menus, storageOpts)
	handlers := routeHandlers{
		auth:       handler.NewAuthHandler(users, tokenManager, handler.NewGoogleOAuthConfig(cfg.OAuth), cfg.OAuth, cfg.Auth, sugaredLogger.Named("auth")),
		restaurant: handler.NewRestaurantHandler(restaurants, menus, owner, plans, sugaredLogger.Named("restaurant")),
		link:       handler.NewLinkHandler(registry, analytics, owner, plans, cfg.App.BaseURL),
		plan:       handler.NewPlanHandler(plans, sugaredLogger.Named("plan")),
		viewer:     viewer,
		upload:     handler.NewUploadHandler(presigner, owner, sugaredLogger.Named("upload")),
		admin:      handler.NewAdminHandler(purger, sugaredLogger.Named("admin")),
	}
	registerRoutes(router, handlers, middleware.AuthMiddleware(tokenManager))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		sugaredLogger.Infof("🚀 服务启动成功, 访问 http://localhost:%d", cfg.Server.Port)
		sugaredLogger.Infof("📚 Swagger 文档地址: http://localhost:%d/swagger/index.html", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugaredLogger.Fatalf("服务启动失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sugaredLogger.Info("正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		sugaredLogger.Errorf("服务关闭失败: %v", err)
	}
	// 等待未写完的访问记录
	viewer.Wait()
	sugaredLogger.Info("服务已退出")
}

type routeHandlers struct {
	auth       *handler.AuthHandler
	restaurant *handler.RestaurantHandler
	link       *handler.LinkHandler
	viewer     *handler.ViewerHandler
	upload     *handler.UploadHandler
	plan       *handler.PlanHandler
	admin      *handler.AdminHandler
}

func registerRoutes(router *gin.Engine, h routeHandlers, authMiddleware gin.HandlerFunc) {
	router.GET("/health", handler.HealthCheck)
	router.GET("/m/:slug", h.viewer.ViewMenu)

	authGroup := router.Group("/auth")
	{
		authGroup.GET("/google/login", h.auth.GoogleLogin)
		authGroup.GET("/google/callback", h.auth.GoogleCallback)
		authGroup.POST("/logout", h.auth.Logout)
	}

	api := router.Group("/api")
	api.Use(authMiddleware)
	{
		api.GET("/me", h.auth.GetCurrentUser)

		api.POST("/restaurants", h.restaurant.CreateRestaurant)
		api.GET("/restaurants", h.restaurant.ListRestaurants)
		api.POST("/restaurants/:id/menus", h.restaurant.CreateMenu)
		api.GET("/restaurants/:id/menus", h.restaurant.ListMenus)
		api.PATCH("/menus/:id/status", h.restaurant.UpdateMenuStatus)

		api.POST("/menus/:id/links", h.link.CreateLink)
		api.GET("/menus/:id/links", h.link.ListLinks)
		api.GET("/menus/:id/analytics", h.link.MenuAnalytics)
		api.PATCH("/links/:id", h.link.UpdateLink)
		api.DELETE("/links/:id", h.link.DeactivateLink)
		api.GET("/links/:id/analytics", h.link.LinkAnalytics)

		api.POST("/uploads/presigned-url", h.upload.PresignUpload)
		api.POST("/uploads/complete", h.upload.CompleteUpload)

		api.GET("/plans", h.plan.ListPlans)
		api.GET("/subscription", h.plan.CurrentSubscription)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AdminMiddleware())
	{
		admin.POST("/visits/purge", h.admin.PurgeVisits)
		admin.POST("/subscriptions", h.plan.AssignPlan)
	}
}
