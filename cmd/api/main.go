package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/asafonov/blog-backend/internal/auth/http"
	authservice "github.com/asafonov/blog-backend/internal/auth/service"
	"github.com/asafonov/blog-backend/internal/common/clock"
	"github.com/asafonov/blog-backend/internal/common/config"
	commoncrypto "github.com/asafonov/blog-backend/internal/common/crypto"
	"github.com/asafonov/blog-backend/internal/common/db"
	commonhttp "github.com/asafonov/blog-backend/internal/common/http"
	"github.com/asafonov/blog-backend/internal/common/jwtverify"
	"github.com/asafonov/blog-backend/internal/common/logger"
	srv "github.com/asafonov/blog-backend/internal/common/server"
	posthttp "github.com/asafonov/blog-backend/internal/post/http"
	postrepo "github.com/asafonov/blog-backend/internal/post/repository"
	postservice "github.com/asafonov/blog-backend/internal/post/service"
	userrepo "github.com/asafonov/blog-backend/internal/user/repository"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "api", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	userRepo := userrepo.NewPgRepository(pool)
	postRepo := postrepo.NewPgRepository(pool)

	// The unique index on users.email is the authoritative uniqueness guard;
	// creation runs fire-and-forget so a slow or failing storage node does
	// not block startup. Until it completes, duplicate registrations can
	// slip past the pre-check.
	go func() {
		if err := userRepo.EnsureEmailIndex(context.Background()); err != nil {
			log.Errorf("failed to ensure unique email index: %v", err)
		}
	}()

	clk := clock.NewRealClock()
	hasher := &commoncrypto.BcryptHasher{}
	tokens := authservice.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, clk)

	authService := authservice.NewAuthService(authservice.AuthServiceDeps{
		Repo:   userRepo,
		Hasher: hasher,
		Tokens: tokens,
		Log:    log,
	})
	postService := postservice.NewPostService(postservice.PostServiceDeps{
		Repo: postRepo,
		Log:  log,
	})

	requireAuth := jwtverify.Middleware(cfg.JWTSecret, clk, log)

	mux := http.NewServeMux()
	authhttp.NewHandler(authService, cfg, log).Register(mux)
	posthttp.NewHandler(postService, cfg, log).Register(mux, requireAuth)
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())

	baseHandler := commonhttp.BuildBaseHandler(log, mux)

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, baseHandler)

	srv.StartWithGracefulShutdown(server, log, "api")
}
