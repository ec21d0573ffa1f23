package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "buyeralike/pkg/domain-errors"
	"buyeralike/pkg/platform/sentinel"
)

func closedDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("pgx", "postgres://buyeralike@127.0.0.1:1/buyeralike")
	require.NoError(t, err)
	require.NoError(t, db.Close())
	return db
}

func TestRunInTx(t *testing.T) {
	t.Run("begin failure is reported as unavailable", func(t *testing.T) {
		called := false
		err := NewTx(closedDB(t), 0).RunInTx(context.Background(), func(context.Context) error {
			called = true
			return nil
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, sentinel.ErrUnavailable)
		assert.False(t, called)
	})

	t.Run("cancelled context never reaches the database", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := NewTx(closedDB(t), 0).RunInTx(ctx, func(context.Context) error { return nil })
		assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
	})
}
