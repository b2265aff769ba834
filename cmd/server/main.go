package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/lukam/admitly/internal/cache"
	"github.com/lukam/admitly/internal/config"
	"github.com/lukam/admitly/internal/database"
	postgresrepo "github.com/lukam/admitly/internal/repository/postgres"
	"github.com/lukam/admitly/internal/service"
	"github.com/lukam/admitly/internal/storage"
	"github.com/lukam/admitly/internal/transport/http/handlers"
	"github.com/lukam/admitly/internal/transport/http/middleware"
	"github.com/lukam/admitly/internal/transport/ws"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx := context.Background()

	// Database
	if err := database.Migrate(ctx, cfg); err != nil {
		log.WithError(err).Fatal("migrations failed")
	}
	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer pool.Close()
	log.Info("connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	courseRepo := postgresrepo.NewCourseRepo(pool)

	// Optional course-query cache
	var courseCache service.CourseCache
	if cfg.RedisURL != "" {
		c, err := cache.NewCourses(cfg.RedisURL, log)
		if err != nil {
			log.WithError(err).Fatal("redis configuration invalid")
		}
		courseCache = c
		log.Info("course cache enabled")
	}

	// Certificate storage
	files, err := storage.NewStore(cfg.UploadDir)
	if err != nil {
		log.WithError(err).Fatal("upload dir unusable")
	}

	// WebSocket hub
	hub := ws.NewHub(log)
	go hub.Run()

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	admissionService := service.NewAdmissionService(userRepo, courseRepo, courseCache, ws.NewHubNotifier(hub))

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, log)
	admissionHandler := handlers.NewAdmissionHandler(admissionService, files, log)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /signup", authHandler.Signup)
	mux.HandleFunc("POST /login", authHandler.Login)

	// Uploaded certificates are public by filename: possession of the URL
	// is the only access control, as specified.
	mux.HandleFunc("GET /files/{name}", handlers.Certificates(files))

	// Protected
	mux.Handle("POST /bio", auth(http.HandlerFunc(admissionHandler.SubmitBio)))
	mux.Handle("GET /courses", auth(http.HandlerFunc(admissionHandler.Courses)))
	mux.Handle("GET /user", auth(http.HandlerFunc(admissionHandler.UserCourses)))
	mux.Handle("POST /apply/{courseId}", auth(http.HandlerFunc(admissionHandler.ApplyDirect)))
	mux.Handle("POST /apply-course", auth(http.HandlerFunc(admissionHandler.ApplyGuarded)))

	// WebSocket (token via query param)
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, cfg.JWTSecret))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.WithField("addr", addr).Info("starting server")
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(cfg.ClientOrigin, mux)))
}
