package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shodart.org/internal/auth"
	"shodart.org/internal/httpapi"
	"shodart.org/internal/image"
	"shodart.org/internal/obs"
	"shodart.org/internal/product"
	"shodart.org/internal/store/pg"
	"shodart.org/internal/user"
)

var (
	version = "1.2.0"
	commit  = "none" // подставляется через -ldflags при сборке
)

func main() {
	// Инициализация observability (регистрация метрик, JSON-логгер и т.п.)
	obs.Init()
	obs.InitBuildInfo(version, commit)

	dsn := os.Getenv("SHODART_PG_DSN")
	if dsn == "" {
		log.Fatal("SHODART_PG_DSN is required")
	}
	secret := os.Getenv("SHODART_AUTH_SECRET")
	if secret == "" {
		log.Fatal("SHODART_AUTH_SECRET is required")
	}

	addr := os.Getenv("SHODART_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	uploadDir := os.Getenv("SHODART_UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	var codecOpts []auth.CodecOption
	if raw := os.Getenv("SHODART_TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("parse SHODART_TOKEN_TTL: %v", err)
		}
		codecOpts = append(codecOpts, auth.WithTTL(ttl))
	}

	db, err := pg.Open(dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	codec, err := auth.NewTokenCodec(secret, codecOpts...)
	if err != nil {
		log.Fatalf("token codec: %v", err)
	}

	userStore := user.NewPGStore(db)
	users := user.NewService(userStore)
	creds := user.NewCredentials(userStore)

	authn, err := auth.NewAuthenticator(creds, codec)
	if err != nil {
		log.Fatalf("authenticator: %v", err)
	}
	resolver, err := auth.NewResolver(creds, codec)
	if err != nil {
		log.Fatalf("resolver: %v", err)
	}

	products := product.NewService(product.NewPGStore(db))
	images, err := image.NewService(image.NewPGStore(db), uploadDir)
	if err != nil {
		log.Fatalf("image service: %v", err)
	}

	api := httpapi.New(httpapi.ReadyProbe{DB: db}, version, httpapi.Deps{
		Auth:     authn,
		Resolver: resolver,
		Users:    users,
		Products: products,
		Images:   images,
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(), // уже обёрнут метриками в httpapi
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting shodart-admin-api %s on %s", version, srv.Addr)

	// graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	log.Println("Stopped")
}
