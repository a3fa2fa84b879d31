package intake

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/domain"
)

func writeBacklog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pending_tickets.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileBacklogLoadsAndDrains(t *testing.T) {
	path := writeBacklog(t, `[
		{"merchant_id": "M-1001", "description": "Checkout page returns 502", "severity": "high"},
		{"merchant_id": "M-1002", "description": "forgot password"}
	]`)
	backlog := NewFileBacklog(path, zap.NewNop())

	tickets := backlog.Observe(context.Background())

	require.Len(t, tickets, 2)
	assert.Equal(t, "M-1001", tickets[0].MerchantID)
	assert.Equal(t, domain.SeverityHigh, tickets[0].Severity)
	assert.Equal(t, domain.SeverityMedium, tickets[1].Severity)

	drained, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(drained))

	assert.Empty(t, backlog.Observe(context.Background()), "second observe starts from a drained file")
}

func TestFileBacklogSkipsInvalidEntries(t *testing.T) {
	path := writeBacklog(t, `[
		{"merchant_id": "", "description": "no merchant"},
		{"merchant_id": "M-1003", "description": "site down", "severity": "critical"}
	]`)
	backlog := NewFileBacklog(path, zap.NewNop())

	tickets := backlog.Observe(context.Background())

	require.Len(t, tickets, 1)
	assert.Equal(t, "M-1003", tickets[0].MerchantID)
}

func TestFileBacklogMissingFile(t *testing.T) {
	backlog := NewFileBacklog(filepath.Join(t.TempDir(), "absent.json"), zap.NewNop())
	assert.Empty(t, backlog.Observe(context.Background()))
}

func TestFileBacklogMalformedFileIsNotDrained(t *testing.T) {
	path := writeBacklog(t, `{"not": "a list"}`)
	backlog := NewFileBacklog(path, zap.NewNop())

	assert.Empty(t, backlog.Observe(context.Background()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"not": "a list"}`, string(content))
}
