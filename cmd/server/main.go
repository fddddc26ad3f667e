package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"studyhub/backend/config"
	"studyhub/backend/internal/api/handler"
	"studyhub/backend/internal/api/router"
	"studyhub/backend/internal/notify"
	"studyhub/backend/internal/repository"
	"studyhub/backend/internal/service"
	"studyhub/backend/internal/widget"
	"studyhub/backend/pkg/database"
	"studyhub/backend/pkg/jwt"
	applogger "studyhub/backend/pkg/logger"
	"studyhub/backend/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，提醒队列与刷新广播将降级", zap.Error(err))
		rdb = nil
	}

	// 5. 初始化 JWT 验证器（Token 由外部认证服务签发）
	verifier := jwt.NewVerifier(&cfg.Auth)

	// 6. 依赖注入: Repository → 协作方 → Service → Handler
	repo := repository.NewRepository(db)

	var notifier notify.Notifier
	if rdb != nil {
		notifier = notify.NewRedisNotifier(rdb, logger)
	} else {
		notifier = notify.NewLogNotifier(logger)
	}

	bridge := widget.NewStoreBridge(repo.WidgetSchedule, rdb, logger)
	renderer := widget.NewRenderer(repo.WidgetSchedule, rdb, logger, cfg.Widget.RefreshInterval)

	svc := service.NewService(cfg, repo, notifier, bridge, logger)
	h := handler.NewHandler(svc, renderer)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, verifier, logger)

	// 8. 启动后台循环：到期提醒派发 + 小组件刷新
	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	if rdb != nil && cfg.Reminder.Enabled {
		dispatcher := notify.NewDispatcher(rdb, logger, cfg.Reminder.DispatchInterval)
		dispatcher.Start(bgCtx)
		logger.Info("提醒派发循环已启动", zap.Duration("interval", cfg.Reminder.DispatchInterval))
	}
	renderer.Start(bgCtx)

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	bgCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭数据库连接
	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
