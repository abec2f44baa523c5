package di

import (
	"taskly/application/serviceimpl"
	"taskly/domain/ports"
	"taskly/domain/repositories"
	"taskly/domain/services"
	"taskly/infrastructure/memory"
	natspkg "taskly/infrastructure/nats"
	"taskly/infrastructure/postgres"
	redispkg "taskly/infrastructure/redis"
	"taskly/infrastructure/smtp"
	"taskly/interfaces/api/handlers"
	"taskly/pkg/config"
	"taskly/pkg/logger"
	"taskly/pkg/scheduler"

	"gorm.io/gorm"
)

type Container struct {
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *redispkg.Client
	NATSClient     *natspkg.Client
	Mailer         ports.MailerPort
	ResetTokens    ports.ResetTokenStore
	EventScheduler scheduler.EventScheduler

	// Repositories
	UserRepository repositories.UserRepository
	TaskRepository repositories.TaskRepository

	// Services
	UserService         services.UserService
	TaskService         services.TaskService
	NotificationService *serviceimpl.NotificationServiceImpl
	ReminderService     *serviceimpl.ReminderService

	// Background consumers
	NotificationWorker *natspkg.Worker
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	c.initRepositories()
	c.initServices()

	if err := c.initWorker(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized", "level", c.Config.Log.Level, "format", c.Config.Log.Format)
	return nil
}

func (c *Container) initInfrastructure() error {
	dbConfig := postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database migrated")

	// Redis is optional: without it stats are uncached and reset tokens live
	// in process memory.
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, falling back to in-process reset tokens", "error", err)
		} else {
			c.RedisClient = redisClient
		}
	}

	if c.RedisClient != nil {
		c.ResetTokens = redispkg.NewResetTokenStore(c.RedisClient)
	} else {
		c.ResetTokens = memory.NewResetTokenStore()
	}

	// NATS is optional too: without it notifications are sent directly in a
	// goroutine instead of through the queue.
	natsClient, err := natspkg.NewClient(natspkg.ClientConfig{URL: c.Config.NATS.URL})
	if err != nil {
		logger.Warn("NATS unavailable, notifications will be sent directly", "error", err)
	} else {
		c.NATSClient = natsClient
	}

	c.Mailer = smtp.NewMailer(c.Config.SMTP)

	return nil
}

func (c *Container) initRepositories() {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.TaskRepository = postgres.NewTaskRepository(c.DB)
	logger.Info("Repositories initialized")
}

func (c *Container) initServices() {
	var queue ports.NotificationQueuePort
	if c.NATSClient != nil {
		queue = natspkg.NewPublisher(c.NATSClient)
	}
	c.NotificationService = serviceimpl.NewNotificationService(queue, c.Mailer)

	c.UserService = serviceimpl.NewUserService(
		c.UserRepository,
		c.ResetTokens,
		c.NotificationService,
		c.Config.JWT.Secret,
	)

	if c.RedisClient != nil {
		c.TaskService = serviceimpl.NewTaskServiceWithCache(c.TaskRepository, c.UserRepository, c.NotificationService, c.RedisClient)
		logger.Info("Task service initialized with stats cache")
	} else {
		c.TaskService = serviceimpl.NewTaskService(c.TaskRepository, c.UserRepository, c.NotificationService)
		logger.Info("Task service initialized without cache")
	}

	logger.Info("Services initialized")
}

func (c *Container) initWorker() error {
	if c.NATSClient == nil {
		return nil
	}

	c.NotificationWorker = natspkg.NewWorker(c.NATSClient, c.NotificationService.Deliver)
	if err := c.NotificationWorker.Start(); err != nil {
		logger.Warn("Notification worker failed to start", "error", err)
		c.NotificationWorker = nil
	}
	return nil
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()
	c.EventScheduler.Start()

	if !c.Config.Reminder.Enabled {
		logger.Info("Reminder sweep disabled")
		return nil
	}

	c.ReminderService = serviceimpl.NewReminderService(
		c.TaskRepository,
		c.NotificationService,
		c.Config.Reminder.Window,
	)

	if err := c.ReminderService.Schedule(c.EventScheduler, c.Config.Reminder.Cron); err != nil {
		logger.Warn("Failed to schedule reminder sweep", "error", err)
	}

	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		UserService: c.UserService,
		TaskService: c.TaskService,
		JWTSecret:   c.Config.JWT.Secret,
	}
}

func (c *Container) Cleanup() error {
	if c.EventScheduler != nil {
		c.EventScheduler.Stop()
	}

	if c.NotificationWorker != nil {
		c.NotificationWorker.Stop()
	}

	if c.NATSClient != nil {
		c.NATSClient.Close()
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis client", "error", err)
		}
	}

	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			return sqlDB.Close()
		}
	}

	return nil
}
