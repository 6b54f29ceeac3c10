package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/survey-generator/internal/common/db"
	commonerrors "github.com/AlibekovAA/survey-generator/internal/common/errors"
	"github.com/AlibekovAA/survey-generator/internal/common/logger"
	"github.com/AlibekovAA/survey-generator/internal/user/domain"
)

type Repository interface {
	FindProfile(ctx context.Context, id domain.ID) (domain.Profile, error)
}

type PgRepository struct {
	pool  *pgxpool.Pool
	log   *logger.Logger
	retry db.RetryConfig
}

func NewPgRepository(pool *pgxpool.Pool, log *logger.Logger) *PgRepository {
	return &PgRepository{
		pool:  pool,
		log:   log,
		retry: db.DefaultRetryConfig,
	}
}

const findProfileQuery = `SELECT id, username, COALESCE(display_name, ''), COALESCE(email, ''), created_at
	FROM users
	WHERE id = $1`

// FindProfile returns commonerrors.ErrUserNotFound when no row matches.
func (r *PgRepository) FindProfile(ctx context.Context, id domain.ID) (domain.Profile, error) {
	var profile domain.Profile

	err := db.RetryWithBackoff(ctx, r.log, r.retry, "find profile", func() error {
		start := time.Now()
		row := r.pool.QueryRow(ctx, findProfileQuery, string(id))
		err := row.Scan(&profile.ID, &profile.Username, &profile.DisplayName, &profile.Email, &profile.CreatedAt)
		return db.HandleQueryError(err, commonerrors.ErrUserNotFound, "find profile", start)
	})
	if err != nil {
		return domain.Profile{}, err
	}

	return profile, nil
}
