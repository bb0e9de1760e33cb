package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yourusername/engage-api/internal/config"
	"github.com/yourusername/engage-api/internal/handler"
	"github.com/yourusername/engage-api/internal/middleware"
	pgRepo "github.com/yourusername/engage-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/engage-api/internal/repository/redis"
	"github.com/yourusername/engage-api/internal/service"
	"github.com/yourusername/engage-api/internal/service/taskrunner"
	"github.com/yourusername/engage-api/pkg/auth"
	"github.com/yourusername/engage-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	adminRepo := pgRepo.NewAdminRepo(db)
	userRepo := pgRepo.NewUserRepo(db)
	formRepo := pgRepo.NewFormRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	optionRepo := pgRepo.NewOptionRepo(db)
	answerRepo := pgRepo.NewAnswerRepo(db)
	taskRepo := pgRepo.NewTaskRepo(db)
	feedbackRepo := pgRepo.NewFeedbackRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Инициализируем планировщик отложенных задач
	schedulerConfig := taskrunner.DefaultConfig()
	schedulerConfig.PollInterval = time.Duration(cfg.Scheduler.PollIntervalSec) * time.Second
	scheduler := taskrunner.NewScheduler(schedulerConfig, &taskrunner.Dependencies{
		TaskRepo:   taskRepo,
		UserRepo:   userRepo,
		AnswerRepo: answerRepo,
		AdminRepo:  adminRepo,
		CacheRepo:  cacheRepo,
	})

	// Инициализируем сервисы
	taskService, err := service.NewTaskService(taskRepo, scheduler, cfg.Scheduler.DefaultDurationValue, cfg.Scheduler.DefaultDurationUnit)
	if err != nil {
		log.Printf("Failed to initialize TaskService: %v", err)
		os.Exit(1)
	}

	authService, err := service.NewAuthService(adminRepo, jwtService, taskService)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}

	userService, err := service.NewUserService(userRepo, adminRepo)
	if err != nil {
		log.Printf("Failed to initialize UserService: %v", err)
		os.Exit(1)
	}

	formService, err := service.NewFormService(formRepo, questionRepo, optionRepo, answerRepo)
	if err != nil {
		log.Printf("Failed to initialize FormService: %v", err)
		os.Exit(1)
	}

	answerService, err := service.NewAnswerService(answerRepo, questionRepo, optionRepo, formRepo, userRepo)
	if err != nil {
		log.Printf("Failed to initialize AnswerService: %v", err)
		os.Exit(1)
	}

	leaderboardService, err := service.NewLeaderboardService(userRepo, adminRepo, answerRepo, taskRepo, taskrunner.DefaultTopWinners)
	if err != nil {
		log.Printf("Failed to initialize LeaderboardService: %v", err)
		os.Exit(1)
	}

	feedbackService, err := service.NewFeedbackService(feedbackRepo, userRepo, adminRepo)
	if err != nil {
		log.Printf("Failed to initialize FeedbackService: %v", err)
		os.Exit(1)
	}

	// Отправка писем: без ключа Resend коды только логируются
	var emailService service.EmailService
	if cfg.Email.ResendAPIKey != "" {
		emailService, err = service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to initialize ResendEmailService: %v", err)
			os.Exit(1)
		}
	} else {
		log.Println("RESEND_API_KEY не задан, письма отправляться не будут")
		emailService = &service.NoopEmailService{}
	}

	otpService, err := service.NewOTPService(cacheRepo, emailService, time.Duration(cfg.Email.OTPTTLMin)*time.Minute)
	if err != nil {
		log.Printf("Failed to initialize OTPService: %v", err)
		os.Exit(1)
	}

	// Восстанавливаем таймеры незавершенных задач после перезапуска
	go func() {
		if err := taskService.Rehydrate(); err != nil {
			log.Printf("Failed to rehydrate pending tasks: %v", err)
		}
	}()

	// Инициализируем обработчики
	adminHandler := handler.NewAdminHandler(authService, userService, taskService, leaderboardService)
	formHandler := handler.NewFormHandler(formService)
	userHandler := handler.NewUserHandler(userService, formService, answerService, leaderboardService, feedbackService, otpService)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	isProduction := gin.Mode() == gin.ReleaseMode

	router := gin.Default()

	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Маршруты администратора
	admin := router.Group("/admin")
	{
		admin.POST("/register", adminHandler.Register)
		admin.POST("/login", adminHandler.Login)

		authed := admin.Group("/")
		authed.Use(authMiddleware.RequireAdmin())
		{
			authed.GET("/getAdmin", adminHandler.GetAdmin)
			authed.GET("/getAllusers", adminHandler.GetAllUsers)
			authed.GET("/getSessionusers/:kind", adminHandler.GetSessionUsers)
			authed.POST("/putTimer", adminHandler.PutTimer)
			authed.GET("/taskStatus/:kind", adminHandler.GetTaskStatus)
			authed.POST("/resetLeaderBoard", adminHandler.ResetLeaderboard)

			authed.POST("/addForm", formHandler.AddForm)
			authed.GET("/getForm", formHandler.GetForms)
			authed.GET("/getFormWithId", formHandler.GetFormsWithIDs)
			authed.GET("/download", formHandler.Download)
			authed.PUT("/updateQuestion", formHandler.UpdateQuestion)
			authed.PUT("/updateOption", formHandler.UpdateOption)
			authed.DELETE("/delete/:formId", middleware.ExtractUintParam("formId", "formID"), formHandler.DeleteForm)
			authed.DELETE("/resetResponse/:formId", middleware.ExtractUintParam("formId", "formID"), formHandler.ResetResponses)
		}
	}

	// Маршруты пользователя
	user := router.Group("/user")
	{
		user.POST("/auth", userHandler.Auth)
		user.GET("/findAdmin/:uniqueCode", userHandler.FindAdmin)
		user.POST("/sendotp", userHandler.SendOTP)
		user.POST("/verifyotp", userHandler.VerifyOTP)

		withUser := user.Group("/")
		{
			withUser.POST("/updatePoints/:id", middleware.ExtractUintParam("id", "userID"), userHandler.UpdatePoints)
			withUser.POST("/spin/:userId", middleware.ExtractUintParam("userId", "userID"), userHandler.SpendSpin)
			withUser.GET("/leaderboard/:userId", middleware.ExtractUintParam("userId", "userID"), userHandler.Leaderboard)
			withUser.GET("/getFormId/:userId", middleware.ExtractUintParam("userId", "userID"), userHandler.GetFormIDs)
			withUser.GET("/getForm/:userId", middleware.ExtractUintParam("userId", "userID"), userHandler.GetForm)
			withUser.POST("/mark/:userId", middleware.ExtractUintParam("userId", "userID"), userHandler.Mark)
			withUser.POST("/feedback/:userId", middleware.ExtractUintParam("userId", "userID"), userHandler.Feedback)
			withUser.GET("/checkFeedback/:userId", middleware.ExtractUintParam("userId", "userID"), userHandler.CheckFeedback)
		}
	}

	// Запускаем HTTP-сервер
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Сервер запущен на порту %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
			os.Exit(1)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Останавливаем циклы опроса задач
	taskService.Shutdown()

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
