package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"buyeralike/internal/opening/models"
	id "buyeralike/pkg/domain"
	"buyeralike/pkg/platform/sentinel"
	txcontext "buyeralike/pkg/platform/tx"
)

// PostgresStore keeps the opening read model in the openings table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Apply upserts o and returns the status it replaced, or "" when o is new.
// The previous status is read in the same statement so concurrent events for
// one opening each see the status they replaced.
func (s *PostgresStore) Apply(ctx context.Context, o *models.Opening) (models.Status, error) {
	if o == nil {
		return "", fmt.Errorf("opening is required")
	}
	query := `
		WITH previous AS (
			SELECT status FROM openings WHERE id = $1 FOR UPDATE
		), upserted AS (
			INSERT INTO openings (id, creator_id, title, status, updated_at)
			VALUES ($1, $2, $3, $4, NOW())
			ON CONFLICT (id) DO UPDATE
			SET creator_id = EXCLUDED.creator_id,
			    title = EXCLUDED.title,
			    status = EXCLUDED.status,
			    updated_at = EXCLUDED.updated_at
			RETURNING id
		)
		SELECT COALESCE((SELECT status FROM previous), '') FROM upserted
	`
	var previous string
	err := s.execer(ctx).QueryRowContext(ctx, query,
		uuid.UUID(o.ID),
		uuid.UUID(o.CreatorID),
		o.Title,
		string(o.Status),
	).Scan(&previous)
	if err != nil {
		return "", fmt.Errorf("apply opening: %w", err)
	}
	return models.Status(previous), nil
}

func (s *PostgresStore) FindByID(ctx context.Context, openingID id.OpeningID) (*models.Opening, error) {
	query := `SELECT id, creator_id, title, status FROM openings WHERE id = $1`
	var (
		o         models.Opening
		rawID     uuid.UUID
		creatorID uuid.UUID
		status    string
	)
	err := s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(openingID)).Scan(&rawID, &creatorID, &o.Title, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find opening: %w", err)
	}
	o.ID = id.OpeningID(rawID)
	o.CreatorID = id.UserID(creatorID)
	o.Status = models.Status(status)
	return &o, nil
}
