package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/campusvote/pollz/internal/anonymize"
	"github.com/campusvote/pollz/internal/app"
	"github.com/campusvote/pollz/internal/auth"
	"github.com/campusvote/pollz/internal/config"
	"github.com/campusvote/pollz/internal/logger"
)

var (
	version = "dev"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `pollz - campus voting platform

Usage:
  pollz [options]

Options:
  -version       Show version and exit
  -help          Show this help message

Configuration is read from the environment (or a .env file):
  PORT             HTTP server port (default 8080)
  DB_PATH          SQLite database path (default "pollz.db")
  LOG_LEVEL        Log level: debug, info, warn, error (default "info")
  VOTER_HASH_SALT  Salt for voter identity digests (required)
  IP_HASH_SALT     Salt for client IP digests (required)
  ADMIN_PASSWORD   Admin password (auto-generated if not set)
  HTTP_LOGGING     Log every HTTP request (default false)

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("pollz %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	appLog := logger.NewWithLevel(logger.ParseLevel(cfg.LogLevel))
	if cfg.HTTPLogging {
		appLog.EnableHTTPLogging()
	}

	// Setup admin authentication
	password := cfg.AdminPassword
	if password == "" {
		password = auth.GeneratePassword()
	}
	adminAuth := auth.NewAdmin(password)

	hasher := anonymize.NewHasher(cfg.VoterHashSalt, cfg.IPHashSalt)

	// Google token verification runs against the provider; local setups can
	// pre-seed identities via a StaticVerifier wiring instead.
	verifier := auth.NewGoogleVerifier()

	a, err := app.New(appLog, cfg.DBPath, hasher, verifier, adminAuth)
	if err != nil {
		log.Fatal("Failed to initialize application: ", err)
	}
	defer a.Close()

	appLog.Info("Admin password", "password", password)

	if err := a.Run(cfg.Addr()); err != nil {
		log.Fatal(err)
	}
}
