package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"gigmatch/internal/domain/booking"
)

// Service runs the no-show sweeper: bookings still pending or confirmed
// after their shift window has closed are marked no_show. The transition is
// a conditional update, so a clock-in racing the sweeper wins cleanly.
type Service struct {
	DB       *pgxpool.Pool
	Interval time.Duration
}

func New(db *pgxpool.Pool, interval time.Duration) *Service {
	return &Service{DB: db, Interval: interval}
}

func (s *Service) Start(ctx context.Context) {
	if s.Interval <= 0 {
		return
	}
	go s.loop(ctx)
}

func (s *Service) loop(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			swept, err := s.SweepNoShows(ctx)
			if err != nil {
				slog.Warn("no-show sweep failed", "err", err)
				continue
			}
			if swept > 0 {
				slog.Info("no-show sweep", "bookings", swept)
			}
		}
	}
}

// SweepNoShows marks stale bookings for shifts whose day has fully passed.
func (s *Service) SweepNoShows(ctx context.Context) (int64, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE bookings b
    SET status = $1, updated_at = now()
    FROM shifts sh
    WHERE b.shift_id = sh.id
      AND b.status IN ($2, $3)
      AND b.clock_in_time IS NULL
      AND sh.shift_date < $4
  `, booking.StatusNoShow, booking.StatusPending, booking.StatusConfirmed,
		time.Now().UTC().Truncate(24*time.Hour))
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
