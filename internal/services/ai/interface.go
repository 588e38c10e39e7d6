// File: internal/services/ai/interface.go
package ai

import (
	"context"

	"github.com/iyunix/go-medisen/internal/domain"
)

// CompletionRequest carries the full ordered transcript of a dialog.
type CompletionRequest struct {
	Model      string
	Transcript []domain.ConversationTurn
	MaxTokens  int
}

// CompletionProvider is the remote completion boundary used by the assistant.
type CompletionProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
