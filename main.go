package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"
	"golang.org/x/time/rate"

	"genedle/internal/genedle"
	"genedle/internal/genenames"
	"genedle/internal/spelling"
)

// App carries the wired services and per-process state shared by handlers.
type App struct {
	Genedle  *genedle.Service
	Spelling *spelling.Service

	Sessions     map[string]*PlayerSession
	SessionMutex sync.RWMutex

	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex

	CookieMaxAge   time.Duration
	SessionTimeout time.Duration
	RateLimitRPS   int
	RateLimitBurst int
	IsProduction   bool
	StartTime      time.Time
}

// newApp builds an App around a registry client, reading tunables from the
// environment.
func newApp(registry genenames.Client) *App {
	return &App{
		Genedle:        genedle.NewService(registry),
		Spelling:       spelling.NewService(registry),
		Sessions:       make(map[string]*PlayerSession),
		LimiterMap:     make(map[string]*rate.Limiter),
		CookieMaxAge:   getEnvDuration("COOKIE_MAX_AGE", 24*time.Hour),
		SessionTimeout: getEnvDuration("SESSION_TIMEOUT", 24*time.Hour),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
		IsProduction:   os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production",
		StartTime:      time.Now(),
	}
}

func main() {
	_ = godotenv.Load()

	registry := genenames.NewHTTPClient(
		getEnv("GENENAMES_BASE_URL", genenames.DefaultBaseURL),
		getEnvDuration("REGISTRY_TIMEOUT", 10*time.Second),
	)
	app := newApp(registry)
	logInfo("Starting Genedle in %s mode", map[bool]string{true: "production", false: "development"}[app.IsProduction])

	stopSweeper := app.startSessionSweeper()
	defer stopSweeper()

	startServer(app.setupRouter())
}

// setupRouter wires middleware and routes onto a gin engine.
func (app *App) setupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	// Puzzle responses depend on cookies and the calendar day; never let an
	// intermediary cache them.
	router.Use(cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	}))
	router.Use(requestIDMiddleware())

	router.GET(RouteGenedleSession, app.genedleSessionHandler)
	router.GET(RouteSpellingSession, app.spellingSessionHandler)

	router.GET(RouteGenedleLetters, app.genedleLettersHandler)
	router.POST(RouteGenedleGuess, app.rateLimitMiddleware(), app.genedleGuessHandler)
	router.GET(RouteSpellingLetters, app.spellingLettersHandler)
	router.GET(RouteSpellingGuess, app.spellingGuessHandler)

	router.GET(RouteHealthz, app.healthzHandler)

	return router
}

func startServer(router *gin.Engine) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		logInfo("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}
