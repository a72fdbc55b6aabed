// Package server assembles the database, payment processor and HTTP router
// into a runnable service.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"boomiis-api/config"
	"boomiis-api/handlers"
	"boomiis-api/middleware"
	"boomiis-api/models"
	"boomiis-api/payments"
	"boomiis-api/routes"
	"boomiis-api/store"
)

const shutdownTimeout = 10 * time.Second

// Server is the running web service.
type Server struct {
	cfg    *config.Config
	db     *gorm.DB
	Router *gin.Engine
	http   *http.Server
}

// New opens the database and wires the router.
func New(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	gin.SetMode(cfg.GinMode)

	db, err := store.Open(cfg.DB)
	if err != nil {
		return nil, err
	}

	return NewWithDB(cfg, db)
}

// NewWithDB wires the router over an already migrated database.
func NewWithDB(cfg *config.Config, db *gorm.DB) (*Server, error) {
	if err := seed(context.Background(), cfg, db); err != nil {
		return nil, err
	}

	var provider payments.Provider
	if cfg.PaymentsEnabled() {
		provider = payments.NewStripe(cfg.StripeSecret)
		log.Info().Str("currency", cfg.Pricing.Currency).Msg("payment intents enabled")
	} else {
		log.Warn().Msg("STRIPE_SECRET not set, orders are created without payment intents")
	}

	auth := middleware.NewAuthenticator(cfg.Admin)
	h := handlers.New(db, cfg, auth, provider)
	router := routes.NewRouter(cfg, h, auth)

	return &Server{
		cfg:    cfg,
		db:     db,
		Router: router,
		http: &http.Server{
			Addr:              ":" + strconv.Itoa(cfg.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// seed records the configured administrator in the user collection.
func seed(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	admin := models.User{
		Email:        cfg.Admin.Email,
		Name:         "Administrator",
		PasswordHash: cfg.Admin.PasswordHash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}

	created, err := store.CreateIfAbsent(ctx, db, &admin, "email")
	if err != nil {
		return err
	}
	if created {
		log.Info().Str("email", admin.Email).Msg("seeded admin user")
	}
	return nil
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Run() error {
	errCh := make(chan error, 1)

	go func() {
		log.Info().Str("addr", s.http.Addr).Msg("http server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(irqSig)

	select {
	case err := <-errCh:
		return err
	case sig := <-irqSig:
		log.Info().Msgf("shutdown request (signal: %v)", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info().Msg("stopping http server ...")
	if err := s.http.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
		return err
	}

	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info().Msg("http server was stopped ... good bye...")
	return nil
}
