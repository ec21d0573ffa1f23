//go:build integration

package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"buyeralike/internal/platform/config"
	"buyeralike/pkg/testutil/containers"
)

func TestNew(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.GetManager().GetRedis(t)

	t.Run("empty URL means not configured", func(t *testing.T) {
		client, err := New(context.Background(), config.RedisConfig{})
		require.NoError(t, err)
		require.Nil(t, client)
	})

	t.Run("connects and reports healthy", func(t *testing.T) {
		client, err := New(context.Background(), config.RedisConfig{URL: rc.URL, PoolSize: 4})
		require.NoError(t, err)
		defer client.Close()
		require.NoError(t, client.Health(context.Background()))
	})
}
