package config // package config loads application configuration from environment variables

import (
	"log"     // log reports configuration errors and halts execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Prices are carried in cents because the derived
// selection total is an integer multiplication at the response boundary.
type Config struct {
	Env             string  // application environment (e.g. "dev", "prod")
	Port            string  // HTTP port to listen on
	JWTSecret       string  // secret used to sign session tokens
	SessionTTLMin   int     // session time-to-live in minutes
	TicketMax       int     // upper bound for the requested ticket count
	UnitPriceCents  int     // price per seat in cents
	ServiceFeeCents int     // per-seat service fee in cents
	OccupancyRatio  float64 // fraction of seats pre-occupied at grid build
	OccupancySeed   int64   // occupancy seed; 0 means seed from the clock
	DBUser          string  // database username (layout catalog, optional)
	DBPass          string  // database password (optional)
	DBHost          string  // database host; empty disables the DB catalog
	DBPort          string  // database port number
	DBName          string  // database name
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message. Database variables
// are optional: when DB_HOST is unset the service runs on the built-in
// layout catalog.
func Load() Config {
	return Config{
		Env:             must("APP_ENV"),                       // environment (dev/test/prod)
		Port:            must("APP_PORT"),                      // port to bind the HTTP server
		JWTSecret:       must("JWT_SECRET"),                    // secret for signing session tokens
		SessionTTLMin:   envInt("SESSION_TTL_MIN", 30),         // how long an idle session survives
		TicketMax:       envInt("TICKET_MAX", 10),              // selection limit clamp ceiling
		UnitPriceCents:  envInt("UNIT_PRICE_CENTS", 1500),      // seat price for the derived total
		ServiceFeeCents: envInt("SERVICE_FEE_CENTS", 150),      // per-seat fee for the derived total
		OccupancyRatio:  envFloat("OCCUPANCY_RATIO", 0.3),      // share of pre-occupied seats
		OccupancySeed:   int64(envInt("OCCUPANCY_SEED", 0)),    // fixed seed for reproducible grids
		DBUser:          os.Getenv("DB_USER"),                  // database user (optional)
		DBPass:          os.Getenv("DB_PASS"),                  // database password (optional)
		DBHost:          os.Getenv("DB_HOST"),                  // database host (optional)
		DBPort:          os.Getenv("DB_PORT"),                  // database port (optional)
		DBName:          os.Getenv("DB_NAME"),                  // database name (optional)
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// envFloat reads an optional float variable, falling back to the default
// on absence or parse failure.
func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
