package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sourav-02121996/project-3-LostNFound/internal/auth"
	"github.com/Sourav-02121996/project-3-LostNFound/internal/handlers"
	"github.com/Sourav-02121996/project-3-LostNFound/internal/services"
	"github.com/Sourav-02121996/project-3-LostNFound/internal/storage"
)

func main() {
	// Setup logger
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	config := loadConfig()

	log.Info().
		Str("host", config.Host).
		Str("port", config.Port).
		Msg("Starting LostNFound API server")

	log.Info().Msg("Initializing Postgres storage...")
	db, err := storage.Open(
		config.DBHost,
		config.DBPort,
		config.DBUser,
		config.DBPassword,
		config.DBName,
		config.DBSSLMode,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Postgres storage")
	}
	defer db.Close()
	log.Info().Msg("Postgres storage initialized")

	itemStore := storage.NewItemStore(db)
	userStore := storage.NewUserStore(db)
	notificationStore := storage.NewNotificationStore(db)

	var images handlers.ImageStore
	if config.MinIOEndpoint != "" {
		log.Info().Msg("Initializing MinIO storage...")
		minioStorage, err := storage.NewMinIOStorage(
			config.MinIOEndpoint,
			config.MinIOPublicEndpoint,
			config.MinIOAccessKey,
			config.MinIOSecretKey,
			config.MinIOBucket,
			config.MinIOUseSSL,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize MinIO storage")
		}
		images = minioStorage
		log.Info().Msg("MinIO storage initialized successfully")
	} else {
		log.Warn().Msg("MinIO not configured - image uploads disabled")
	}

	var events services.Publisher
	if config.RabbitMQURL != "" {
		log.Info().Msg("Initializing RabbitMQ publisher...")
		publisher, err := services.NewRabbitMQPublisher(
			config.RabbitMQURL,
			config.RabbitMQExchange,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize RabbitMQ publisher")
		}
		defer publisher.Close()
		events = publisher
		log.Info().Msg("RabbitMQ publisher initialized successfully")
	} else {
		log.Warn().Msg("RabbitMQ not configured - item events disabled")
	}

	notifier := services.NewNotifier(notificationStore, userStore)
	itemService := services.NewItemService(itemStore, notifier, events)
	userService := services.NewUserService(userStore)
	notificationService := services.NewNotificationService(notificationStore)

	tokens := auth.NewJWTManager(config.JWTSecret, config.JWTDuration)

	handler := handlers.NewHandler(itemService, userService, notificationService, images, tokens)

	router := setupRouter(handler, tokens)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", config.Host, config.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("address", srv.Addr).
			Msg("Server starting...")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

type Config struct {
	Host                string
	Port                string
	JWTSecret           string
	JWTDuration         time.Duration
	RabbitMQURL         string
	RabbitMQExchange    string
	MinIOEndpoint       string
	MinIOPublicEndpoint string
	MinIOAccessKey      string
	MinIOSecretKey      string
	MinIOBucket         string
	MinIOUseSSL         bool
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSSLMode           string
}

// loadConfig loads configuration from environment variables
func loadConfig() *Config {
	jwtHours, err := strconv.Atoi(getEnv("JWT_DURATION_HOURS", "24"))
	if err != nil || jwtHours <= 0 {
		jwtHours = 24
	}

	return &Config{
		Host:                getEnv("API_HOST", "0.0.0.0"),
		Port:                getEnv("API_PORT", "4000"),
		JWTSecret:           getEnv("JWT_SECRET", "dev-secret-key"),
		JWTDuration:         time.Duration(jwtHours) * time.Hour,
		RabbitMQURL:         getEnv("RABBITMQ_URL", ""),
		RabbitMQExchange:    getEnv("RABBITMQ_EXCHANGE", "lostnfound.events"),
		MinIOEndpoint:       getEnv("MINIO_ENDPOINT", ""),
		MinIOPublicEndpoint: getEnv("MINIO_PUBLIC_ENDPOINT", ""),
		MinIOAccessKey:      getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey:      getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:         getEnv("MINIO_BUCKET_NAME", "lostnfound-images"),
		MinIOUseSSL:         getEnv("MINIO_USE_SSL", "false") == "true",
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", "postgres"),
		DBName:              getEnv("DB_NAME", "lostnfound"),
		DBSSLMode:           getEnv("DB_SSL_MODE", "disable"),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// setupRouter configures all routes and middleware
func setupRouter(h *handlers.Handler, tokens *auth.JWTManager) *mux.Router {
	r := mux.NewRouter()

	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(metricsMiddleware)

	authenticate := auth.Middleware(tokens)

	// Users
	r.HandleFunc("/api/users", h.RegisterHandler).Methods("POST")
	r.HandleFunc("/api/users/login", h.LoginHandler).Methods("POST")
	r.Handle("/api/users/profile", authenticate(http.HandlerFunc(h.GetProfileHandler))).Methods("GET")
	r.Handle("/api/users/profile", authenticate(http.HandlerFunc(h.UpdateProfileHandler))).Methods("PUT")
	r.Handle("/api/users/password", authenticate(http.HandlerFunc(h.ChangePasswordHandler))).Methods("PUT")

	// Items
	r.HandleFunc("/api/items", h.ListItemsHandler).Methods("GET")
	r.Handle("/api/items", authenticate(http.HandlerFunc(h.CreateItemHandler))).Methods("POST")
	r.HandleFunc("/api/items/user/{userId}", h.ListUserItemsHandler).Methods("GET")
	r.HandleFunc("/api/items/{id}", h.GetItemHandler).Methods("GET")
	r.Handle("/api/items/{id}", authenticate(http.HandlerFunc(h.UpdateItemHandler))).Methods("PUT")
	r.Handle("/api/items/{id}", authenticate(http.HandlerFunc(h.DeleteItemHandler))).Methods("DELETE")

	// Notifications
	r.Handle("/api/notifications", authenticate(http.HandlerFunc(h.ListNotificationsHandler))).Methods("GET")
	r.Handle("/api/notifications/read-all", authenticate(http.HandlerFunc(h.MarkAllNotificationsReadHandler))).Methods("PUT")
	r.Handle("/api/notifications/{id}/read", authenticate(http.HandlerFunc(h.MarkNotificationReadHandler))).Methods("PUT")

	// Health and metrics
	r.HandleFunc("/health", h.HealthCheckHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	log.Info().Msg("Routes configured successfully")
	return r
}

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lostnfound_http_requests_total",
			Help: "Total HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lostnfound_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

// metricsMiddleware records request counts and latency per route
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}

		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// loggingMiddleware logs all HTTP requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap ResponseWriter to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapped.statusCode).
			Dur("duration_ms", time.Since(start)).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP request")
	})
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("Panic recovered")

				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
