package partnership

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"buyeralike/internal/partnership/models"
	"buyeralike/internal/platform/postgres"
	id "buyeralike/pkg/domain"
	"buyeralike/pkg/platform/sentinel"
	txcontext "buyeralike/pkg/platform/tx"
)

// PostgresStore persists partnerships in PostgreSQL. Uniqueness rules are
// partial unique indexes; violations surface as sentinel.ErrConflict.
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

const partnershipColumns = `id, user_id, opening_id, partnership_group_id, status, role_in_group, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, p *models.Partnership) error {
	if p == nil {
		return fmt.Errorf("partnership is required")
	}
	query := `
		INSERT INTO partnerships (` + partnershipColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(p.ID),
		uuid.UUID(p.UserID),
		uuid.UUID(p.OpeningID),
		groupArg(p.GroupID),
		string(p.Status),
		roleArg(p.RoleInGroup),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("create partnership: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create partnership: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, pid id.PartnershipID) (*models.Partnership, error) {
	query := `SELECT ` + partnershipColumns + ` FROM partnerships WHERE id = $1`
	return s.findOne(ctx, "find partnership", query, uuid.UUID(pid))
}

// FindByIDForUpdate locks the row for the rest of the surrounding transaction.
func (s *PostgresStore) FindByIDForUpdate(ctx context.Context, pid id.PartnershipID) (*models.Partnership, error) {
	query := `SELECT ` + partnershipColumns + ` FROM partnerships WHERE id = $1` + lockClause(ctx)
	return s.findOne(ctx, "find partnership for update", query, uuid.UUID(pid))
}

func (s *PostgresStore) FindGeneralInterest(ctx context.Context, userID id.UserID, openingID id.OpeningID) (*models.Partnership, error) {
	query := `
		SELECT ` + partnershipColumns + `
		FROM partnerships
		WHERE user_id = $1 AND opening_id = $2
		  AND partnership_group_id IS NULL AND status = 'interested'
	` + lockClause(ctx)
	return s.findOne(ctx, "find general interest", query, uuid.UUID(userID), uuid.UUID(openingID))
}

func (s *PostgresStore) FindActiveForUserOpening(ctx context.Context, userID id.UserID, openingID id.OpeningID) (*models.Partnership, error) {
	query := `
		SELECT ` + partnershipColumns + `
		FROM partnerships
		WHERE user_id = $1 AND opening_id = $2
		  AND status IN ('interested', 'pending_group_join', 'accepted_into_group')
		ORDER BY CASE status
			WHEN 'accepted_into_group' THEN 3
			WHEN 'pending_group_join' THEN 2
			ELSE 1
		END DESC, created_at DESC
		LIMIT 1
	`
	return s.findOne(ctx, "find active partnership for opening", query, uuid.UUID(userID), uuid.UUID(openingID))
}

func (s *PostgresStore) FindActiveForUserGroup(ctx context.Context, userID id.UserID, groupID id.GroupID) (*models.Partnership, error) {
	query := `
		SELECT ` + partnershipColumns + `
		FROM partnerships
		WHERE user_id = $1 AND partnership_group_id = $2
		  AND status IN ('pending_group_join', 'accepted_into_group')
		LIMIT 1
	`
	return s.findOne(ctx, "find active partnership for group", query, uuid.UUID(userID), uuid.UUID(groupID))
}

func (s *PostgresStore) CountAcceptedInGroup(ctx context.Context, groupID id.GroupID) (int, error) {
	query := `
		SELECT COUNT(*) FROM partnerships
		WHERE partnership_group_id = $1 AND status = 'accepted_into_group'
	`
	var count int
	if err := s.execer(ctx).QueryRowContext(ctx, query, uuid.UUID(groupID)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count accepted members: %w", err)
	}
	return count, nil
}

// CountAcceptedByGroups counts accepted members for many groups in one round trip.
func (s *PostgresStore) CountAcceptedByGroups(ctx context.Context, groupIDs []id.GroupID) (map[id.GroupID]int, error) {
	counts := make(map[id.GroupID]int, len(groupIDs))
	if len(groupIDs) == 0 {
		return counts, nil
	}
	ids := make([]string, 0, len(groupIDs))
	for _, gid := range groupIDs {
		counts[gid] = 0
		ids = append(ids, gid.String())
	}
	query := `
		SELECT partnership_group_id, COUNT(*)
		FROM partnerships
		WHERE partnership_group_id = ANY(($1::text[])::uuid[]) AND status = 'accepted_into_group'
		GROUP BY partnership_group_id
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("count accepted members by group: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var gid uuid.UUID
		var count int
		if err := rows.Scan(&gid, &count); err != nil {
			return nil, fmt.Errorf("scan accepted count: %w", err)
		}
		counts[id.GroupID(gid)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accepted counts: %w", err)
	}
	return counts, nil
}

func (s *PostgresStore) Update(ctx context.Context, p *models.Partnership) error {
	if p == nil {
		return fmt.Errorf("partnership is required")
	}
	query := `
		UPDATE partnerships
		SET partnership_group_id = $2, status = $3, role_in_group = $4, updated_at = $5
		WHERE id = $1
	`
	result, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(p.ID),
		groupArg(p.GroupID),
		string(p.Status),
		roleArg(p.RoleInGroup),
		p.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("update partnership: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("update partnership: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update partnership rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// BulkUpdateStatus is a single conditional UPDATE, so it commutes with
// concurrent single-record transitions out of from.
func (s *PostgresStore) BulkUpdateStatus(ctx context.Context, groupID id.GroupID, from, to models.PartnershipStatus, now time.Time) ([]*models.Partnership, error) {
	query := `
		UPDATE partnerships
		SET status = $3, updated_at = $4
		WHERE partnership_group_id = $1 AND status = $2
		RETURNING ` + partnershipColumns
	rows, err := s.execer(ctx).QueryContext(ctx, query, uuid.UUID(groupID), string(from), string(to), now)
	if err != nil {
		return nil, fmt.Errorf("bulk update partnership status: %w", err)
	}
	return collect(rows, "bulk update partnership status")
}

func (s *PostgresStore) ListByGroup(ctx context.Context, groupID id.GroupID) ([]*models.Partnership, error) {
	query := `SELECT ` + partnershipColumns + ` FROM partnerships WHERE partnership_group_id = $1 ORDER BY created_at, id`
	rows, err := s.execer(ctx).QueryContext(ctx, query, uuid.UUID(groupID))
	if err != nil {
		return nil, fmt.Errorf("list partnerships by group: %w", err)
	}
	return collect(rows, "list partnerships by group")
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID) ([]*models.Partnership, error) {
	query := `SELECT ` + partnershipColumns + ` FROM partnerships WHERE user_id = $1 ORDER BY created_at, id`
	rows, err := s.execer(ctx).QueryContext(ctx, query, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list partnerships by user: %w", err)
	}
	return collect(rows, "list partnerships by user")
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]*models.Partnership, error) {
	query := `SELECT ` + partnershipColumns + ` FROM partnerships ORDER BY created_at, id`
	rows, err := s.execer(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list partnerships: %w", err)
	}
	return collect(rows, "list partnerships")
}

func (s *PostgresStore) findOne(ctx context.Context, op, query string, args ...any) (*models.Partnership, error) {
	p, err := scanPartnership(s.execer(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// lockClause adds FOR UPDATE only inside a transaction, where the lock is held
// until commit.
func lockClause(ctx context.Context) string {
	if _, ok := txcontext.From(ctx); ok {
		return ` FOR UPDATE`
	}
	return ``
}

type partnershipRow interface {
	Scan(dest ...any) error
}

func scanPartnership(row partnershipRow) (*models.Partnership, error) {
	var (
		p       models.Partnership
		pid     uuid.UUID
		userID  uuid.UUID
		opening uuid.UUID
		groupID uuid.NullUUID
		status  string
		role    sql.NullString
	)
	if err := row.Scan(&pid, &userID, &opening, &groupID, &status, &role, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.ID = id.PartnershipID(pid)
	p.UserID = id.UserID(userID)
	p.OpeningID = id.OpeningID(opening)
	if groupID.Valid {
		gid := id.GroupID(groupID.UUID)
		p.GroupID = &gid
	}
	p.Status = models.PartnershipStatus(status)
	p.RoleInGroup = role.String
	return &p, nil
}

func collect(rows *sql.Rows, op string) ([]*models.Partnership, error) {
	defer rows.Close()
	var out []*models.Partnership
	for rows.Next() {
		p, err := scanPartnership(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func groupArg(gid *id.GroupID) any {
	if gid == nil || gid.IsNil() {
		return nil
	}
	return uuid.UUID(*gid)
}

func roleArg(role string) any {
	if role == "" {
		return nil
	}
	return role
}
