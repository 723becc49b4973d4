// cmd/web/main.go
//
// User Management API – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (jail-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Build the Vault client when VAULT_ADDR is set, then load config
//     (resolving any vault: secret references).
//
//  4. Open the optional GeoLite2 database for audit enrichment.
//
//  5. Construct the core: record store, secondary indexes, query result
//     cache, and the service façade that composes them.
//
//  6. When database.seed_dsn is configured, read the employee table once
//     and restore it into the store.
//
//  7. Serve the chi route tree (auth, audit, security middleware) on a
//     hardened http.Server; drain gracefully on SIGINT/SIGTERM.
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

	"github.com/joho/godotenv"

	"github.com/JMLOSP/UserManagementAPI/internal/config"
	"github.com/JMLOSP/UserManagementAPI/internal/database"
	"github.com/JMLOSP/UserManagementAPI/internal/employee"
	"github.com/JMLOSP/UserManagementAPI/internal/httpapi"
	"github.com/JMLOSP/UserManagementAPI/internal/logger"
	"github.com/JMLOSP/UserManagementAPI/internal/querycache"
	"github.com/JMLOSP/UserManagementAPI/internal/requestinfo"
	"github.com/JMLOSP/UserManagementAPI/internal/seed"
	"github.com/JMLOSP/UserManagementAPI/internal/server"
	"github.com/JMLOSP/UserManagementAPI/internal/vault"
)

const serverEnvPath = "/usr/local/etc/user-management-api/global.env"

// loadEnv prefers the jail-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	//
	// ── 1.  Secrets and config ──────────────────────────────────────────
	//
	var secrets *vault.Client
	if os.Getenv("VAULT_ADDR") != "" {
		secrets, err = vault.New(ctx, logOut.Infof)
		if err != nil {
			logOut.Fatalf("vault client: %v", err)
		}
	}

	cfg, err := config.Load(ctx, secrets)
	if err != nil {
		logOut.Fatalf("load config: %v", err)
	}

	if cfg.GeoIP.DBPath != "" {
		if err := requestinfo.InitGeo(cfg.GeoIP.DBPath); err != nil {
			logOut.Warnw("geoip disabled", "path", cfg.GeoIP.DBPath, "err", err)
		}
	}

	//
	// ── 2.  Core construction ───────────────────────────────────────────
	//
	store := employee.NewStore()
	index := employee.NewIndex()
	cache := querycache.New(querycache.Config{
		TTL:      cfg.Cache.TTL,
		Capacity: cfg.Cache.Capacity,
		Shards:   cfg.Cache.Shards,
	})
	svc := employee.NewService(store, index, cache, logOut)

	//
	// ── 3.  Optional seed load ──────────────────────────────────────────
	//
	if dsn := cfg.Database.SeedDSN; dsn != "" {
		seedDB, err := database.Open(dsn)
		if err != nil {
			logOut.Fatalf("connect seed DB: %v", err)
		}
		records, err := seed.Load(ctx, seedDB)
		if err != nil {
			logOut.Fatalf("read seed data: %v", err)
		}
		svc.Seed(records)
		_ = seedDB.Close() // read once; the store is the database from here on
		logOut.Infow("store seeded", "records", len(records))
	}

	//
	// ── 4.  HTTP server ─────────────────────────────────────────────────
	//
	api := httpapi.New(svc, cfg)
	srv := server.New(cfg.HTTP.ListenAddr, api.Routes())

	go func() {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logOut.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logOut.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logOut.Errorw("shutdown", "err", err)
	}
}
