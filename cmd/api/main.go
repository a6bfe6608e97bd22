package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/OliverHarrison7/TrueorScam/internal/cache"
	"github.com/OliverHarrison7/TrueorScam/internal/engine"
	"github.com/OliverHarrison7/TrueorScam/internal/middleware"
	"github.com/OliverHarrison7/TrueorScam/internal/routers"
	"github.com/OliverHarrison7/TrueorScam/internal/shared"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	emw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	_ = godotenv.Load()

	// Flags / ENV Variables
	geminiAPIKey := flag.String("gemini-api-key", shared.GetEnv("GEMINI_API_KEY", ""), "Gemini API key; empty or \"mock\" runs without the model")
	geminiModel := flag.String("gemini-model", shared.GetEnv("GEMINI_MODEL", shared.DefaultModel), "Gemini model identifier")
	retries := flag.Int("retries", shared.DefaultMaxAttempts, "Max attempts per inference")
	requestTimeout := flag.Duration("request-timeout", shared.DefaultRequestTimeout, "Per-attempt model request timeout")
	safeBrowsingKey := flag.String("safe-browsing-key", shared.GetEnv("SAFE_BROWSING_KEY", ""), "Google Safe Browsing API key")
	redisAddr := flag.String("redis-addr", shared.GetEnv("REDIS_ADDR", ""), "Redis host:port; empty uses in-process cache")
	dsn := flag.String("dsn", shared.GetEnv("MYSQL_DSN", ""), "MySQL DSN for scan history; empty disables history")
	metricsAPIKey := flag.String("metrics-api-key", shared.GetEnv("METRICS_API_KEY", ""), "Metrics api key")
	port := flag.String("port", shared.GetEnv("PORT", "8080"), "Listen port")
	debug := flag.Bool("debug", false, "Debug enabled")
	flag.Parse()

	var logger *zap.Logger
	var err error
	if !*debug {
		logger, err = zap.NewProduction()
		if err != nil {
			panic("Failed init logger")
		}
	}
	if *debug {
		logger, err = zap.NewDevelopment()
		if err != nil {
			panic("Failed init logger")
		}
	}
	log := logger.Sugar()

	// Cache / counter store: redis when configured, in-process otherwise
	var store cache.Store
	if *redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     *redisAddr,
			Password: "",
			DB:       0,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			panic(fmt.Sprintf("failed ping to redis db: %s", err))
		}
		defer func() {
			_ = redisClient.Close()
		}()
		store = cache.NewRedis(redisClient)
	} else {
		log.Info("No redis address configured, using in-process cache")
		store = cache.NewMemory()
	}

	// Scan history DB init
	var db *sql.DB
	if *dsn != "" {
		db, err = sql.Open("mysql", *dsn)
		if err != nil {
			panic(fmt.Sprintf("failed initializing sqlClient: %s", err))
		}
		if err = db.Ping(); err != nil {
			panic(fmt.Sprintf("failed ping to sql db: %s", err))
		}
		defer func() {
			_ = db.Close()
		}()
	} else {
		log.Info("No DSN configured, scan history disabled")
	}

	eng := engine.New(engine.Config{
		APIKey:      *geminiAPIKey,
		Model:       *geminiModel,
		MaxAttempts: *retries,
		Timeout:     *requestTimeout,
	}, log)
	if eng.MockMode() {
		log.Warn("No Gemini API key configured, all verdicts will be mocked")
	}

	e := echo.New()
	e.GET(("/ping"), func(c echo.Context) error {
		return c.String(200, "")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			apiKey, err := shared.ExtractAPIKey(c)
			if err != nil {
				return c.String(401, "Missing or invalid API key")
			}

			if apiKey != *metricsAPIKey {
				return c.String(401, "Unauthorized API key")
			}
			return next(c)
		}
	})
	base := e.Group("")
	base.Use(emw.CORS())
	base.Use(middleware.NewRecoverMiddleware(log))
	base.Use(middleware.NewTrackMiddleware(log))

	_, err = routers.RegisterDetectRoutes(base, routers.DetectRouterConfig{
		Engine:          eng,
		SafeBrowsingKey: *safeBrowsingKey,
		Store:           store,
		DB:              db,
		Log:             log,
	})
	if err != nil {
		panic(err)
	}

	go func() {
		if err := e.Start(":" + *port); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	sctx, cancel := context.WithTimeout(context.Background(), shared.DefaultShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		e.Logger.Fatal(err)
	}
}
