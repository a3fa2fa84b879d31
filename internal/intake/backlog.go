package intake

import (
	"context"
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/domain"
)

// Source supplies pending tickets from an external backlog. Observe returns
// an empty slice, never an error, when nothing is pending.
type Source interface {
	Observe(ctx context.Context) []domain.Ticket
}

// FileBacklog reads pending submissions from a JSON file. Observing drains
// the file: successfully loaded submissions are removed so the next observe
// starts clean. Invalid entries are logged and skipped; they never become
// tickets.
type FileBacklog struct {
	path   string
	logger *zap.Logger
}

// NewFileBacklog constructs a file-backed source.
func NewFileBacklog(path string, logger *zap.Logger) *FileBacklog {
	return &FileBacklog{path: path, logger: logger}
}

// Observe loads and drains the backlog file.
func (b *FileBacklog) Observe(ctx context.Context) []domain.Ticket {
	content, err := os.ReadFile(b.path)
	if err != nil {
		if !os.IsNotExist(err) {
			b.logger.Warn("unable to read backlog file", zap.String("path", b.path), zap.Error(err))
		}
		return nil
	}
	if len(content) == 0 {
		return nil
	}

	var submissions []Submission
	if err := json.Unmarshal(content, &submissions); err != nil {
		b.logger.Warn("backlog file is not a valid submission list", zap.String("path", b.path), zap.Error(err))
		return nil
	}

	tickets := make([]domain.Ticket, 0, len(submissions))
	for i, sub := range submissions {
		ticket, err := NewTicket(sub)
		if err != nil {
			b.logger.Warn("skipping invalid backlog submission",
				zap.Int("index", i),
				zap.String("merchant_id", sub.MerchantID),
				zap.Error(err))
			continue
		}
		tickets = append(tickets, ticket)
	}

	// Drain only after a successful load so a read failure re-presents the
	// backlog instead of losing it.
	if err := os.WriteFile(b.path, []byte("[]"), 0o644); err != nil {
		b.logger.Warn("unable to drain backlog file", zap.String("path", b.path), zap.Error(err))
	}

	return tickets
}
