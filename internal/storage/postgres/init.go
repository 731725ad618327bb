package postgres

import (
	"context"
	"fmt"

	"log/slog"

	"lifeline/internal/config"
	"lifeline/internal/service"
	"lifeline/pkg/e"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Postgres struct {
	Pool         *pgxpool.Pool
	Ambulance    *AmbulanceRepo
	Hospital     *HospitalRepo
	Accident     *AccidentRepo
	Casualty     *CasualtyRepo
	BloodRequest *BloodRequestRepo
	Reservation  *ReservationRepo
}

func NewPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Postgres, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Database,
		cfg.Postgres.SSLMode,
	)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("failed to parse pgx config", slog.String("error", err.Error()))
		return nil, e.Wrap("storage.pg.NewPostgres.ParseConfig", err)
	}
	poolCfg.MaxConns = cfg.Postgres.MaxConns
	poolCfg.MinConns = cfg.Postgres.MinConns
	poolCfg.MaxConnLifetime = cfg.Postgres.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Error("failed to create pgx pool", slog.String("error", err.Error()))
		return nil, e.Wrap("storage.pg.NewPostgres.NewWithConfig", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Error("failed to ping postgres", slog.String("error", err.Error()))
		pool.Close()
		return nil, e.Wrap("storage.pg.NewPostgres.Ping", err)
	}
	logger.Info("connected to postgres")

	return &Postgres{
		Pool:         pool,
		Ambulance:    NewAmbulanceRepo(pool, logger),
		Hospital:     NewHospitalRepo(pool, logger),
		Accident:     NewAccidentRepo(pool, logger),
		Casualty:     NewCasualtyRepo(pool, logger),
		BloodRequest: NewBloodRequestRepo(pool, logger),
		Reservation:  NewReservationRepo(pool, logger),
	}, nil
}

func (p *Postgres) Ping(ctx context.Context) error { return p.Pool.Ping(ctx) }

func (p *Postgres) Close() { p.Pool.Close() }

func (p *Postgres) Ambulances() service.AmbulanceRepository       { return p.Ambulance }
func (p *Postgres) Hospitals() service.HospitalRepository         { return p.Hospital }
func (p *Postgres) Accidents() service.AccidentRepository         { return p.Accident }
func (p *Postgres) Casualties() service.CasualtyRepository        { return p.Casualty }
func (p *Postgres) BloodRequests() service.BloodRequestRepository { return p.BloodRequest }
func (p *Postgres) Reservations() service.ReservationRepository   { return p.Reservation }
