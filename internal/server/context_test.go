package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamafumi/line-mcp/internal/instrumentation"
	"github.com/yamafumi/line-mcp/internal/line"
)

func TestNewServerContext(t *testing.T) {
	cfg := testConfig()
	sc, err := NewServerContext(context.Background(), cfg)
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	assert.Same(t, cfg, sc.Config())
	assert.NotNil(t, sc.LineClient())
	assert.Nil(t, sc.Metrics())
	assert.False(t, sc.IsShutdown())
}

func TestNewServerContextMissingToken(t *testing.T) {
	cfg := testConfig()
	cfg.ChannelAccessToken = ""

	_, err := NewServerContext(context.Background(), cfg)
	assert.Error(t, err)
}

func TestServerContextSetters(t *testing.T) {
	sc := newTestServerContext(t)

	client, err := line.NewClient("other-token")
	require.NoError(t, err)
	sc.SetLineClient(client)
	assert.Same(t, client, sc.LineClient())

	metrics := &instrumentation.Metrics{}
	sc.SetMetrics(metrics)
	assert.Same(t, metrics, sc.Metrics())
}
