package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_NotNil(t *testing.T) {
	l := NewLogger("test")
	require.NotNil(t, l)
}

func TestNewFileLogger_NotNil(t *testing.T) {
	l := NewFileLogger("test")
	require.NotNil(t, l)
}

func TestNop_DiscardsOutput(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)

	assert.NotPanics(t, func() {
		l.Info().Str("k", "v").Msg("should go nowhere")
	})
}

func TestGetChildLogger_ReturnsNewInstance(t *testing.T) {
	parent := Nop()
	child := parent.GetChildLogger()

	require.NotNil(t, child)
	assert.NotSame(t, parent, child)
}

func TestFromContext_RoundTrip(t *testing.T) {
	l := Nop()
	ctx := l.WithContext(context.Background())

	got := FromContext(ctx)
	require.NotNil(t, got)
}

func TestFromContext_EmptyContext_NotNil(t *testing.T) {
	got := FromContext(context.Background())
	require.NotNil(t, got)
}
