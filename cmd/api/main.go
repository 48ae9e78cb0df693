package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/music-school-api/api/swagger"
	"github.com/noah-isme/music-school-api/internal/handler"
	"github.com/noah-isme/music-school-api/internal/middleware"
	"github.com/noah-isme/music-school-api/internal/repository"
	"github.com/noah-isme/music-school-api/internal/service"
	"github.com/noah-isme/music-school-api/pkg/cache"
	"github.com/noah-isme/music-school-api/pkg/config"
	"github.com/noah-isme/music-school-api/pkg/database"
	"github.com/noah-isme/music-school-api/pkg/jobs"
	"github.com/noah-isme/music-school-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/music-school-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/music-school-api/pkg/middleware/requestid"
	"github.com/noah-isme/music-school-api/pkg/tracing"
)

// @title Music School API
// @version 1.0.0
// @description Student registry, attendance, fee ledger and dashboard statistics for a music school
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	shutdownTracing, err := tracing.Init(cfg, logr)
	if err != nil {
		logr.Fatal("failed to init tracing", zap.Error(err))
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			logr.Fatal("failed to migrate database", zap.Error(err))
		}
		logr.Info("database migrations applied")
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// Statistics are still served uncached.
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Stats.CacheTTL, logr, cfg.Stats.CacheEnabled && redisClient != nil)

	studentRepo := repository.NewStudentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	invalidator := service.NewInvalidationService(cacheSvc, logr)
	queue := jobs.NewQueue("cache-invalidation", invalidator.Handle, jobs.QueueConfig{
		Workers:    cfg.Invalidation.Workers,
		MaxRetries: cfg.Invalidation.Retries,
		RetryDelay: cfg.Invalidation.RetryDelay,
		Logger:     logr,
	})
	rootCtx, stopQueue := context.WithCancel(context.Background())
	queue.Start(rootCtx)
	invalidator.UseQueue(queue)

	statsSvc := service.NewStatsService(service.StatsServiceParams{
		Repo:    statsRepo,
		Metrics: metricsSvc,
		Logger:  logr,
		Config: service.StatsServiceConfig{
			Location:       cfg.Stats.Location,
			SeriesPaidOnly: cfg.Stats.SeriesPaidOnly,
			SeriesSorted:   cfg.Stats.SeriesSorted,
		},
	})
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Stats:  statsSvc,
		Cache:  cacheSvc,
		Logger: logr,
		Config: service.DashboardServiceConfig{CacheTTL: cfg.Stats.CacheTTL},
	})
	exportSvc := service.NewExportService(dashboardSvc, logr)
	studentSvc := service.NewStudentService(studentRepo, invalidator, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, studentRepo, validate, logr)
	paymentSvc := service.NewPaymentService(service.PaymentServiceParams{
		Repo:      paymentRepo,
		Students:  studentRepo,
		Notifier:  invalidator,
		Validator: validate,
		Logger:    logr,
		Location:  cfg.Stats.Location,
	})
	expenseSvc := service.NewExpenseService(service.ExpenseServiceParams{
		Repo:      expenseRepo,
		Notifier:  invalidator,
		Validator: validate,
		Logger:    logr,
		Location:  cfg.Stats.Location,
	})

	statsHandler := handler.NewStatsHandler(dashboardSvc, exportSvc)
	studentHandler := handler.NewStudentHandler(studentSvc, attendanceSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	financeHandler := handler.NewFinanceHandler(paymentSvc, expenseSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, map[string]handler.Pinger{
		"database": db,
		"cache":    handler.PingFunc(cacheRepo.Ping),
	})

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(tracing.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	api.GET("/metrics/summary", metricsHandler.Summary)

	api.GET("/dashboard", statsHandler.Overview)
	stats := api.Group("/stats")
	stats.GET("", statsHandler.Stats)
	stats.GET("/series", statsHandler.Series)
	stats.GET("/export", statsHandler.Export)

	students := api.Group("/students")
	students.GET("", studentHandler.List)
	students.POST("", studentHandler.Create)
	students.GET("/:id", studentHandler.Get)
	students.PUT("/:id", studentHandler.Update)
	students.DELETE("/:id", studentHandler.Deactivate)
	students.GET("/:id/attendance", studentHandler.Attendance)

	attendance := api.Group("/attendance")
	attendance.GET("", attendanceHandler.List)
	attendance.POST("", attendanceHandler.Submit)
	attendance.DELETE("/:id", attendanceHandler.Delete)

	payments := api.Group("/payments")
	payments.GET("", financeHandler.ListPayments)
	payments.POST("", financeHandler.RecordPayment)
	payments.POST("/:id/paid", financeHandler.MarkPaid)
	payments.DELETE("/:id", financeHandler.DeletePayment)

	expenses := api.Group("/expenses")
	expenses.GET("", financeHandler.ListExpenses)
	expenses.POST("", financeHandler.RecordExpense)
	expenses.DELETE("/:id", financeHandler.DeleteExpense)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logr.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("server shutdown failed", zap.Error(err))
	}
	queue.Stop()
	stopQueue()
	if err := shutdownTracing(ctx); err != nil {
		logr.Warn("tracing shutdown failed", zap.Error(err))
	}
}
