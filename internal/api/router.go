package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"lifeline/internal/api/handlers/http/admin"
	"lifeline/internal/api/handlers/http/blood"
	"lifeline/internal/api/handlers/http/fleet"
	"lifeline/internal/api/handlers/http/public"
	"lifeline/internal/api/handlers/http/system"
	"lifeline/internal/config"
	"lifeline/internal/middleware"
	"lifeline/internal/service"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, svc *service.Service, db, cache system.Pinger) *Server {
	publicHandler := public.NewHandler(logger, svc.Dispatch)
	fleetHandler := fleet.NewHandler(logger, svc.Dispatch)
	bloodHandler := blood.NewHandler(logger, svc.Blood)
	adminHandler := admin.NewHandler(logger, svc.Registry, svc.Dispatch)
	systemHandler := system.NewHandler(logger, db, cache)

	r := InitRouter(cfg, publicHandler, fleetHandler, bloodHandler, adminHandler, systemHandler, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func InitRouter(
	cfg *config.Config,
	publicHandler *public.Handler,
	fleetHandler *fleet.Handler,
	bloodHandler *blood.Handler,
	adminHandler *admin.Handler,
	systemHandler *system.Handler,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	r.Route("/api/v1", func(api chi.Router) {
		// PUBLIC: accident reporting
		api.Route("/accidents", func(pr chi.Router) {
			pr.Use(middleware.Limit(10, 20, 5*time.Minute, logger))
			pr.Post("/", publicHandler.ReportAccident)
			pr.Post("/{id}/casualties", publicHandler.AddCasualty)
		})

		// FLEET: crew actions on their own ambulance
		api.Route("/ambulances/{id}", func(fr chi.Router) {
			fr.Use(middleware.Limit(30, 60, 5*time.Minute, logger))
			fr.Post("/accept", fleetHandler.Accept)
			fr.Post("/arrive", fleetHandler.Arrive)
			fr.Post("/transport", fleetHandler.StartTransport)
			fr.Post("/complete", fleetHandler.CompleteTransport)
			fr.Put("/status", fleetHandler.UpdateStatus)
		})

		// BLOOD: inter-hospital transfers
		api.Route("/blood-requests", func(br chi.Router) {
			br.Use(middleware.Limit(10, 20, 5*time.Minute, logger))
			br.Post("/", bloodHandler.Create)
			br.Route("/{id}", func(rr chi.Router) {
				rr.Post("/accept", bloodHandler.Accept)
				rr.Post("/complete", bloodHandler.Complete)
				rr.Post("/reject", bloodHandler.Reject)
			})
		})

		// ADMIN
		api.Route("/admin", func(ar chi.Router) {
			ar.Use(middleware.APIKeyMiddleware(cfg.APIKey))
			ar.Use(middleware.Limit(2, 5, 10*time.Minute, logger))

			ar.Get("/hospitals", adminHandler.ListHospitals)
			ar.Post("/hospitals/rank", adminHandler.RankHospitals)

			ar.Route("/accidents/{id}", func(rr chi.Router) {
				rr.Put("/status", adminHandler.UpdateAccidentStatus)
				rr.Delete("/", adminHandler.CancelAccident)
			})
		})

		// SYSTEM
		api.Get("/health", systemHandler.Health)
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
