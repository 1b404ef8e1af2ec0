package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/avorobev/todo-service/internal/handlers"
	"github.com/avorobev/todo-service/internal/jwt"
	"github.com/avorobev/todo-service/internal/logger"
	"github.com/avorobev/todo-service/internal/middlewares"
	"github.com/avorobev/todo-service/internal/publishers"
	"github.com/avorobev/todo-service/internal/repositories"
	"github.com/avorobev/todo-service/internal/services"
	"github.com/avorobev/todo-service/internal/storage"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// Config holds all application configuration, constructed once at startup
// and passed by injection; nothing reads the environment after parseConfig.
type Config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	JWTSecretKey string
	JWTExpMinute int

	CORSAllowedOrigins []string

	KafkaAddr  string
	KafkaTopic string

	RequestTimeoutSecond int
}

// @title todo-service API
// @version 1.0.0
// @description Multi-tenant task-list service with bearer-token authentication
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and builds the
// immutable application configuration.
func parseConfig(path string) (*Config, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getEnvInt := func(key string, defaultValue int) (int, error) {
		return strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	}

	cfg := &Config{
		AppHost:       getEnv("APP_HOST", "localhost"),
		AppPort:       getEnv("APP_PORT", "8080"),
		LogLevel:      getEnv("APP_LOG_LEVEL", "info"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		JWTSecretKey:  getEnv("JWT_SECRET_KEY", "my_super_secret_key"),
		KafkaAddr:     getEnv("KAFKA_ADDR", ""),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "todo-events"),
	}

	if origins := getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8000"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, strings.TrimSpace(origin))
		}
	}

	var err error
	if cfg.RedisPort, err = getEnvInt("REDIS_PORT", 6379); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RedisPoolSize, err = getEnvInt("REDIS_POOL_SIZE", 10); err != nil {
		return nil, err
	}
	if cfg.RedisMinIdleConns, err = getEnvInt("REDIS_MIN_IDLE_CONNS", 2); err != nil {
		return nil, err
	}
	if cfg.JWTExpMinute, err = getEnvInt("JWT_EXP_MINUTE", 30); err != nil {
		return nil, err
	}
	if cfg.RequestTimeoutSecond, err = getEnvInt("REQUEST_TIMEOUT_SECOND", 15); err != nil {
		return nil, err
	}

	return cfg, nil
}

// run initializes the logger, store client, and HTTP server. It sets up
// routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg *Config) error {
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to the key-value store
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Errorw("Redis connection error", "error", err)
		return err
	}
	defer rdb.Close()

	// Initialize token service
	tokenService := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(time.Duration(cfg.JWTExpMinute)*time.Minute),
	)

	// Initialize storage and repositories
	store := storage.New(rdb)
	userReadRepo := repositories.NewUserReadRepository(store)
	userWriteRepo := repositories.NewUserWriteRepository(store)
	todoReadRepo := repositories.NewTodoReadRepository(store)
	todoWriteRepo := repositories.NewTodoWriteRepository(store)

	// Event publishing is optional; without a broker address todo mutations
	// are simply not emitted.
	var publisher services.TodoEventPublisher
	if cfg.KafkaAddr != "" {
		kafkaPublisher := publishers.New(cfg.KafkaAddr, cfg.KafkaTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		logger.Log.Infof("Publishing todo events to %s topic %s", cfg.KafkaAddr, cfg.KafkaTopic)
	}

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokenService)
	todoService := services.NewTodoService(todoReadRepo, todoWriteRepo, publisher)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(time.Duration(cfg.RequestTimeoutSecond) * time.Second))
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.LoggingMiddleware)

	// Public routes
	r.Post("/register", handlers.NewRegisterHandler(authService))
	r.Post("/token", handlers.NewTokenHandler(authService))
	r.Get("/health", handlers.NewHealthHandler())

	// Protected routes; every request re-authenticates from its bearer token
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(tokenService))
		r.Get("/todos", handlers.NewTodoListHandler(todoService))
		r.Post("/todos", handlers.NewTodoCreateHandler(todoService))
		r.Get("/todos/{id}", handlers.NewTodoGetHandler(todoService))
		r.Put("/todos/{id}", handlers.NewTodoUpdateHandler(todoService))
		r.Delete("/todos/{id}", handlers.NewTodoDeleteHandler(todoService))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
