// File: internal/services/assistant/session.go
package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/iyunix/go-medisen/internal/domain"
	"github.com/iyunix/go-medisen/internal/services/ai"
)

var (
	// ErrReplyPending is returned by Send while the previous message awaits its reply.
	// Nothing is queued or changed.
	ErrReplyPending = errors.New("assistant reply pending")
	// ErrSessionReset is returned when the session was reset while a reply was in flight.
	ErrSessionReset = errors.New("assistant session was reset")
)

type State string

const (
	StateFresh  State = "fresh"  // only the greeting or seed turn
	StateActive State = "active" // at least one user message was sent
)

type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// View is what the assistant dialog renders.
type View struct {
	Open       bool                `json:"open"`
	State      State               `json:"state"`
	Pending    bool                `json:"pending"`
	Transcript domain.Conversation `json:"transcript"`
}

// Session is one assistant dialog. The transcript is append-only and never empty.
type Session struct {
	provider ai.CompletionProvider
	config   *Config
	logger   Logger

	mu         sync.Mutex
	transcript domain.Conversation
	state      State
	pending    bool
	open       bool
	epoch      uint64
}

func NewSession(provider ai.CompletionProvider, config *Config, logger Logger) *Session {
	if config == nil {
		config = DefaultConfig()
	}
	s := &Session{provider: provider, config: config, logger: logger}
	s.resetLocked()
	return s
}

// Open shows the dialog. A non-empty seed replaces the greeting, but only
// while the session is still fresh; an exchange in progress is never clobbered.
func (s *Session) Open(seed string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.open = true
	seed = strings.TrimSpace(seed)
	if seed == "" || s.state != StateFresh {
		return
	}
	s.transcript = domain.Conversation{{Role: domain.RoleAssistant, Content: seed}}
}

// Close hides the dialog. An outstanding reply is not cancelled and still
// lands in the transcript when it arrives.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
}

// Reset starts over with the greeting. A reply still in flight is dropped.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.resetLocked()
}

// Send appends the user's message and blocks for the assistant's reply,
// which is appended and returned. Failures of the completion service are
// turned into a fixed apology turn rather than an error.
func (s *Session) Send(ctx context.Context, text string) (domain.ConversationTurn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ConversationTurn{}, domain.NewValidationError("assistant_send", "text", "message is empty")
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return domain.ConversationTurn{}, ErrReplyPending
	}
	s.transcript = append(s.transcript, domain.ConversationTurn{Role: domain.RoleUser, Content: text})
	s.state = StateActive
	s.pending = true
	epoch := s.epoch
	req := ai.CompletionRequest{
		Model:      s.config.Model,
		Transcript: s.transcript.Clone(),
		MaxTokens:  s.config.MaxTokens,
	}
	s.mu.Unlock()

	turn := domain.ConversationTurn{Role: domain.RoleAssistant}
	content, err := s.provider.Complete(ctx, req)
	switch {
	case err == nil:
		turn.Content = content
	case ai.IsShapeError(err):
		s.logger.Warn("assistant returned no usable reply", "error", err)
		turn.Content = NoReplyReply
	default:
		s.logger.Error("assistant exchange failed", "error", err)
		turn.Content = ErrorReply
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		s.logger.Debug("dropping reply for a reset session")
		return domain.ConversationTurn{}, ErrSessionReset
	}
	s.transcript = append(s.transcript, turn)
	s.pending = false
	return turn, nil
}

func (s *Session) Transcript() domain.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Clone()
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		Open:       s.open,
		State:      s.state,
		Pending:    s.pending,
		Transcript: s.transcript.Clone(),
	}
}

func (s *Session) resetLocked() {
	s.transcript = domain.Conversation{{Role: domain.RoleAssistant, Content: s.config.Greeting}}
	s.state = StateFresh
	s.pending = false
}
