package group

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"buyeralike/internal/partnership/models"
	"buyeralike/internal/platform/postgres"
	id "buyeralike/pkg/domain"
	"buyeralike/pkg/platform/sentinel"
	txcontext "buyeralike/pkg/platform/tx"
)

// PostgresStore persists partnership groups in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const groupColumns = `id, opening_id, creator_id, name, description, max_members, status, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, g *models.PartnershipGroup) error {
	if g == nil {
		return fmt.Errorf("group is required")
	}
	query := `
		INSERT INTO partnership_groups (` + groupColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(g.ID),
		uuid.UUID(g.OpeningID),
		uuid.UUID(g.CreatorID),
		g.Name,
		g.Description,
		maxMembersArg(g.MaxMembers),
		string(g.Status),
		g.CreatedAt,
		g.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("create group: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, groupID id.GroupID) (*models.PartnershipGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM partnership_groups WHERE id = $1`
	return s.findOne(ctx, "find group", query, uuid.UUID(groupID))
}

// FindByIDForUpdate row-locks the group for the surrounding transaction.
// Admissions into the group serialise on this lock.
func (s *PostgresStore) FindByIDForUpdate(ctx context.Context, groupID id.GroupID) (*models.PartnershipGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM partnership_groups WHERE id = $1`
	if _, ok := txcontext.From(ctx); ok {
		query += ` FOR UPDATE`
	}
	return s.findOne(ctx, "find group for update", query, uuid.UUID(groupID))
}

func (s *PostgresStore) Update(ctx context.Context, g *models.PartnershipGroup) error {
	if g == nil {
		return fmt.Errorf("group is required")
	}
	query := `
		UPDATE partnership_groups
		SET name = $2, description = $3, max_members = $4, status = $5, updated_at = $6
		WHERE id = $1
	`
	result, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(g.ID),
		g.Name,
		g.Description,
		maxMembersArg(g.MaxMembers),
		string(g.Status),
		g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update group rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListByOpening(ctx context.Context, openingID id.OpeningID) ([]*models.PartnershipGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM partnership_groups WHERE opening_id = $1 ORDER BY created_at, id`
	rows, err := s.execer(ctx).QueryContext(ctx, query, uuid.UUID(openingID))
	if err != nil {
		return nil, fmt.Errorf("list groups by opening: %w", err)
	}
	defer rows.Close()

	var out []*models.PartnershipGroup
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}
	return out, nil
}

// LockOpening takes a transaction-scoped advisory lock keyed by the opening,
// serialising group provisioning for it. Outside a transaction it is a no-op.
func (s *PostgresStore) LockOpening(ctx context.Context, openingID id.OpeningID) error {
	tx, ok := txcontext.From(ctx)
	if !ok {
		return nil
	}
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, openingID.String()); err != nil {
		return fmt.Errorf("lock opening: %w", err)
	}
	return nil
}

func (s *PostgresStore) findOne(ctx context.Context, op, query string, args ...any) (*models.PartnershipGroup, error) {
	g, err := scanGroup(s.execer(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return g, nil
}

type groupRow interface {
	Scan(dest ...any) error
}

func scanGroup(row groupRow) (*models.PartnershipGroup, error) {
	var (
		g          models.PartnershipGroup
		groupID    uuid.UUID
		openingID  uuid.UUID
		creatorID  uuid.UUID
		maxMembers sql.NullInt32
		status     string
	)
	if err := row.Scan(&groupID, &openingID, &creatorID, &g.Name, &g.Description, &maxMembers, &status, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	g.ID = id.GroupID(groupID)
	g.OpeningID = id.OpeningID(openingID)
	g.CreatorID = id.UserID(creatorID)
	if maxMembers.Valid {
		m := int(maxMembers.Int32)
		g.MaxMembers = &m
	}
	g.Status = models.GroupStatus(status)
	return &g, nil
}

func maxMembersArg(m *int) any {
	if m == nil {
		return nil
	}
	return *m
}
