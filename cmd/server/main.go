package main // Entry point package

import (
	"log"  // Logging library
	"time" // Janitor interval

	"github.com/joho/godotenv"    // .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"seatpick/internal/config"     // Internal config loader
	"seatpick/internal/database"   // MySQL pool for the layout catalog
	"seatpick/internal/handler"    // HTTP handlers
	"seatpick/internal/middleware" // Rate limiting and response cache
	"seatpick/internal/repository" // Session store and layout catalog
	"seatpick/internal/router"     // Route registration
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	// Resolve the layout catalog: MySQL-backed when DB_HOST is configured,
	// otherwise the built-in venue. Session state is in-memory either way.
	var layouts repository.LayoutCatalog = repository.NewStaticCatalog()
	if cfg.DBHost != "" {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("layout catalog database: %v", err)
		}
		defer db.Close()
		layouts = repository.NewLayoutRepo(db)
	}

	store := repository.NewSessionStore(time.Duration(cfg.SessionTTLMin) * time.Minute)
	go func() {
		// Janitor: drop expired sessions so abandoned grids do not pile up.
		for range time.Tick(time.Minute) {
			if n := store.PurgeExpired(); n > 0 {
				log.Printf("purged %d expired sessions", n)
			}
		}
	}()

	e := echo.New()

	// Redis backs rate limiting and the layout response cache; both degrade
	// to pass-through when the client is nil.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and caching disabled")
	}
	// The session limiter keys on the authenticated session id, so the
	// router mounts it after SessionAuth. Open endpoints have no session
	// to key on and get their own ip+route bucket.
	rlCfg := config.LoadRateLimitConfig()
	limiter := middleware.NewTokenBucket(rlCfg, rdb)
	openCfg := rlCfg
	openCfg.KeyStrategy = "ip_route"
	openLimiter := middleware.NewTokenBucket(openCfg, rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterLayouts(e, handler.NewLayoutHandler(layouts), cache, openLimiter)
	router.RegisterSessions(e, handler.NewSessionHandler(store, layouts, cfg), cfg.JWTSecret, limiter, openLimiter)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
