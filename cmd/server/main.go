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

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/quiz-gen/backend/internal/auth"
	"github.com/quiz-gen/backend/internal/config"
	"github.com/quiz-gen/backend/internal/generator"
	"github.com/quiz-gen/backend/internal/quiz"
	"github.com/quiz-gen/backend/internal/session"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	llm, err := generator.NewClient(cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Sessions live in memory only
	store := session.NewStore()
	go sweepSessions(ctx, store, cfg.SessionIdle)

	authManager := auth.NewManager(
		store,
		auth.NewTokenIssuer(cfg.SessionSecret, 24*time.Hour),
		auth.NewCookieStore(cfg.SessionSecret, int(cfg.SessionIdle.Seconds())),
	)
	quizService := quiz.NewService(
		store,
		generator.NewQuizGenerator(llm, cfg.MaxAttempts),
		generator.NewExplainer(llm),
		cfg.APIKey,
	)
	quizHandler := quiz.NewHandler(quizService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/sessions", authManager.CreateSession).Methods("POST")

	// Session-scoped routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(authManager.Middleware)
	quizHandler.RegisterRoutes(protected)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on :%s (provider %s, %d attempts)", cfg.Port, cfg.LLM.Provider, cfg.MaxAttempts)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}

func sweepSessions(ctx context.Context, store *session.Store, maxIdle time.Duration) {
	interval := maxIdle / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Sweep(maxIdle); n > 0 {
				log.Printf("[session] evicted %d idle sessions", n)
			}
		}
	}
}
