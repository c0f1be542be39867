package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"pran-rokto/internal/db"
	"pran-rokto/internal/server"
)

func main() {
	addr := getenvDefault("ROKTO_ADDR", ":8080")
	build := getenvDefault("ROKTO_VERSION", "dev")

	secretKey := os.Getenv("ROKTO_SECRET_KEY")
	// Safety: refuse to start without a token signing secret.
	if secretKey == "" {
		log.Printf("service=backend msg=%q", "missing ROKTO_SECRET_KEY")
		os.Exit(1)
	}

	// Database
	dsn := getenvDefault("DATABASE_URL", "")
	dbConn, err := server.OpenDB(dsn)
	if err != nil {
		log.Printf("service=backend msg=%q err=%v", "db_connect_failed", err)
		os.Exit(1)
	}
	defer func() { _ = dbConn.Close() }()

	// Run migrations
	log.Printf("service=backend msg=%q", "running_migrations")
	if err := db.RunMigrations(dbConn); err != nil {
		log.Printf("service=backend msg=%q err=%v", "migration_failed", err)
		os.Exit(1)
	}
	log.Printf("service=backend msg=%q", "migrations_complete")

	// Object storage for profile photos
	minioClient, bucket, err := server.NewMinioClient()
	if err != nil {
		log.Printf("service=backend msg=%q err=%v", "minio_connect_failed", err)
		os.Exit(1)
	}

	maxUpload, err := maxUploadBytes()
	if err != nil {
		log.Printf("service=backend msg=%q err=%v", "bad ROKTO_MAX_UPLOAD_BYTES", err)
		os.Exit(1)
	}

	srv := server.New(server.Config{
		Addr:           addr,
		Build:          build,
		SecretKey:      secretKey,
		DB:             dbConn,
		Minio:          minioClient,
		Bucket:         bucket,
		PublicURL:      getenvDefault("ROKTO_PUBLIC_URL", ""),
		MaxUploadBytes: maxUpload,
	})

	// Start the HTTP server in a background goroutine.
	// This allows us to listen for OS signals while the server runs.
	errCh := make(chan error, 1)
	go func() {
		log.Printf("service=backend msg=%q addr=%s version=%s", "starting", addr, build)
		errCh <- srv.Start()
	}()

	// Set up signal handling for graceful shutdown on SIGINT (Ctrl+C) or SIGTERM (container stop).
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	// Block until either a shutdown signal is received or the server encounters an error.
	select {
	case sig := <-sigCh:
		// Signal received: initiate graceful shutdown.
		log.Printf("service=backend msg=%q signal=%s", "shutting_down", sig.String())
		// Give the server 5 seconds to finish in-flight requests and cleanup.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("service=backend msg=%q err=%v", "shutdown_error", err)
			os.Exit(1)
		}
		log.Printf("service=backend msg=%q", "shutdown_complete")
	case err := <-errCh:
		// Server error: exit immediately.
		if err != nil {
			log.Printf("service=backend msg=%q err=%v", "server_error", err)
			os.Exit(1)
		}
	}
}

// maxUploadBytes reads ROKTO_MAX_UPLOAD_BYTES and returns the maximum
// allowed photo upload size in bytes. Returns 0 if not set (no limit).
func maxUploadBytes() (int64, error) {
	raw := os.Getenv("ROKTO_MAX_UPLOAD_BYTES")
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

// getenvDefault reads an environment variable and returns a default value if not set.
// This helper avoids importing extra packages and keeps main.go self-contained.
func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
