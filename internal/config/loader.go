package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/example/campus-reservations/internal/interval"
)

// Config captures environment driven configuration values for the
// reservation service.
type Config struct {
	HTTPPort       int
	SQLiteDSN      string
	TokenSecret    string
	AMQPURL        string
	NotifyExchange string
	TermCalendar   interval.TermCalendar
}

// Load parses configuration values from the current process environment. A
// `.env` file in the working directory is read first when present; real
// environment variables win over file entries.
//
// The loader applies sensible defaults for optional fields while validating
// required values and aggregating every missing or malformed entry into a
// single error.
func Load() (Config, error) {
	// Ignore a missing .env; it is a development convenience only.
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:       8080,
		SQLiteDSN:      "file:reservations.db?_foreign_keys=on",
		NotifyExchange: "reservations.events",
		TermCalendar:   interval.NewTermCalendar(nil),
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("RESERVATIONS_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "RESERVATIONS_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("RESERVATIONS_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if secret := strings.TrimSpace(os.Getenv("RESERVATIONS_TOKEN_SECRET")); secret == "" {
		missing = append(missing, "RESERVATIONS_TOKEN_SECRET")
	} else {
		cfg.TokenSecret = secret
	}

	cfg.AMQPURL = strings.TrimSpace(os.Getenv("RESERVATIONS_AMQP_URL"))

	if exchange := strings.TrimSpace(os.Getenv("RESERVATIONS_NOTIFY_EXCHANGE")); exchange != "" {
		cfg.NotifyExchange = exchange
	}

	if terms := strings.TrimSpace(os.Getenv("RESERVATIONS_TERMS")); terms != "" {
		calendar, err := interval.ParseTermCalendar(terms)
		if err != nil {
			invalid = append(invalid, "RESERVATIONS_TERMS")
		} else {
			cfg.TermCalendar = calendar
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("environment variables hold invalid values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
