package redis

import (
	"context"
	"strconv"
	"testing"

	"github.com/ds124wfegd/notification-service/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	server := miniredis.RunT(t)
	port, err := strconv.Atoi(server.Port())
	require.NoError(t, err)

	client, err := NewRedisClient(context.Background(), &config.RedisConfig{Host: server.Host(), Port: port})
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Set(context.Background(), "key", "value", 0).Err())
	server.CheckGet(t, "key", "value")
}

func TestNewRedisClientUnreachable(t *testing.T) {
	server := miniredis.RunT(t)
	port, err := strconv.Atoi(server.Port())
	require.NoError(t, err)
	host := server.Host()
	server.Close()

	_, err = NewRedisClient(context.Background(), &config.RedisConfig{Host: host, Port: port, MaxRetries: -1})
	assert.Error(t, err)
}
