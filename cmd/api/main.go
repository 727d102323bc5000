package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/souvikmndl/ott-records/internal/data"
	"github.com/souvikmndl/ott-records/internal/mailer"
	"github.com/souvikmndl/ott-records/internal/validator"
	"github.com/souvikmndl/ott-records/internal/vcs"
	_ "modernc.org/sqlite"
)

var version = vcs.Version()

type (
	config struct {
		port     int
		env      string
		logLevel string
		db       struct {
			driver       string
			dsn          string
			maxOpenConns int
			maxIdleConns int
			maxIdleTime  time.Duration
			migrate      bool
		}
		limiter struct {
			rps     float64
			burst   int
			enabled bool
		}
		smtp struct {
			host     string
			port     int
			username string
			password string
			sender   string
		}
		notify struct {
			recipient string
		}
		cors struct {
			trustedOrigins []string
		}
		staticDir string
	}

	application struct {
		config config
		logger *slog.Logger
		models data.Models
		mailer *mailer.Mailer
		wg     sync.WaitGroup
	}
)

func main() {
	cfg, displayVersion, err := parseConfig(os.Args[1:])
	if err != nil {
		// the flag set has already printed the error and usage
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	if v := validateConfig(cfg); !v.Valid() {
		for key, msg := range v.Errors {
			fmt.Fprintf(os.Stderr, "invalid -%s: %s\n", key, msg)
		}
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.logLevel)}))

	db, err := openDB(cfg)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("db connection established", "driver", cfg.db.driver)

	if cfg.db.migrate {
		err = data.Migrate(context.Background(), db)
		if err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
	}

	app := &application{
		config: cfg,
		logger: logger,
		models: data.NewModels(db),
	}

	if cfg.notify.recipient != "" {
		app.mailer, err = mailer.New(cfg.smtp.host, cfg.smtp.port, cfg.smtp.username, cfg.smtp.password, cfg.smtp.sender)
		if err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
	}

	err = app.serve()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// parseConfig reads the command line flags, with environment variables as defaults
func parseConfig(args []string) (config, bool, error) {
	var cfg config

	fs := flag.NewFlagSet("api", flag.ContinueOnError)

	// PORT is what most hosting platforms hand us
	defaultPort := 4000
	if p, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		defaultPort = p
	}

	fs.IntVar(&cfg.port, "port", defaultPort, "API server port")
	fs.StringVar(&cfg.env, "env", "development", "Environment (development|staging|production)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "Log level (debug|info|warn|error)")

	fs.StringVar(&cfg.db.driver, "db-driver", "postgres", "Database driver (postgres|sqlite)")
	fs.StringVar(&cfg.db.dsn, "db-dsn", os.Getenv("OTT_DB_DSN"), "Database DSN (a file path or :memory: for sqlite)")
	fs.IntVar(&cfg.db.maxOpenConns, "db-max-open-conns", 25, "Database max open connections")
	fs.IntVar(&cfg.db.maxIdleConns, "db-max-idle-conns", 25, "Database max idle connections")
	fs.DurationVar(&cfg.db.maxIdleTime, "db-max-idle-time", 15*time.Minute, "Database max connection idle time")
	fs.BoolVar(&cfg.db.migrate, "db-migrate", true, "Create the ott table on startup if it does not exist")

	fs.Float64Var(&cfg.limiter.rps, "limiter-rps", 2, "Rate limiter maximum requests per second")
	fs.IntVar(&cfg.limiter.burst, "limiter-burst", 4, "Rate limiter maximum burst")
	fs.BoolVar(&cfg.limiter.enabled, "limiter-enabled", true, "Enable rate limiter")

	fs.StringVar(&cfg.smtp.host, "smtp-host", "localhost", "SMTP host")
	fs.IntVar(&cfg.smtp.port, "smtp-port", 1025, "SMTP port")
	fs.StringVar(&cfg.smtp.username, "smtp-username", os.Getenv("OTT_SMTP_USERNAME"), "SMTP username")
	fs.StringVar(&cfg.smtp.password, "smtp-password", os.Getenv("OTT_SMTP_PASSWORD"), "SMTP password")
	fs.StringVar(&cfg.smtp.sender, "smtp-sender", "OTT Records <no-reply@example.com>", "SMTP sender")
	fs.StringVar(&cfg.notify.recipient, "notify-recipient", "", "Email address told about every record change (empty disables notifications)")

	// any origin, unless the operator narrows it down
	cfg.cors.trustedOrigins = []string{"*"}
	fs.Func("cors-trusted-origins", `trusted CORS origins (space seperated, * allows any) (default "*")`, func(val string) error {
		// Fields(s) splits the string s on spaces and returns a list/slice
		cfg.cors.trustedOrigins = strings.Fields(val)
		return nil
	})

	fs.StringVar(&cfg.staticDir, "static-dir", "", "Serve the front-end from this directory instead of the embedded page")

	displayVersion := fs.Bool("version", false, "Display version and exit")

	if err := fs.Parse(args); err != nil {
		return cfg, false, err
	}

	return cfg, *displayVersion, nil
}

func validateConfig(cfg config) *validator.Validator {
	v := validator.New()

	v.Check(validator.PermittedValue(cfg.env, "development", "staging", "production"), "env", "must be development, staging or production")
	v.Check(validator.PermittedValue(cfg.logLevel, "debug", "info", "warn", "error"), "log-level", "must be debug, info, warn or error")
	v.Check(validator.PermittedValue(cfg.db.driver, "postgres", "sqlite"), "db-driver", "must be postgres or sqlite")
	v.Check(cfg.db.dsn != "", "db-dsn", "must be provided")
	v.Check(cfg.port > 0 && cfg.port <= 65535, "port", "must be between 1 and 65535")

	if cfg.notify.recipient != "" {
		v.Check(validator.Matches(cfg.notify.recipient, validator.EmailRX), "notify-recipient", "must be a valid email address")
	}

	return v
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func openDB(cfg config) (*sqlx.DB, error) {
	db, err := sqlx.Open(cfg.db.driver, cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	switch cfg.db.driver {
	case "sqlite":
		// sqlite allows a single writer, and every :memory: connection is its own db
		db.SetMaxOpenConns(1)
	default:
		// default maxOpenConns for PSQL is 100, and ideally maxIdleConns == maxOpenConns
		db.SetMaxOpenConns(cfg.db.maxOpenConns)
		db.SetMaxIdleConns(cfg.db.maxIdleConns)
		db.SetConnMaxIdleTime(cfg.db.maxIdleTime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// ctx has timeout of 5s, PingContext will try to establish a connection with a timeout of 5s
	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
