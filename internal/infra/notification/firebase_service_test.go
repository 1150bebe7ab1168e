package notification

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"neighborhood/config"
	"neighborhood/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTokens(t *testing.T) {
	tokens := make([]string, 0, 1001)
	for i := range 1001 {
		tokens = append(tokens, fmt.Sprintf("token-%d", i))
	}

	chunks := chunkTokens(tokens, multicastLimit)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 500)
	assert.Len(t, chunks[1], 500)
	assert.Equal(t, []string{"token-1000"}, chunks[2])

	assert.Empty(t, chunkTokens(nil, multicastLimit))
}

func TestNew_DisabledReturnsNoop(t *testing.T) {
	cfg := &config.Config{Firebase: &config.FirebaseConfig{Enabled: false}}

	svc, err := New(Params{Config: cfg, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)

	result, err := svc.SendBatchNotification(context.Background(), []string{"a"}, service.PushMessage{Title: "t"})
	require.NoError(t, err)
	assert.Zero(t, result.SuccessCount)
}
