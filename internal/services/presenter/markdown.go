// File: internal/services/presenter/markdown.go
package presenter

import (
	"bytes"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/iyunix/go-medisen/internal/domain"
)

// Raw HTML in replies stays escaped; goldmark's default renderer omits it.
var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderTurn converts one turn to HTML. Assistant replies are markdown;
// user text is escaped verbatim.
func RenderTurn(turn domain.ConversationTurn) (string, error) {
	if turn.Role == domain.RoleUser {
		return "<p>" + html.EscapeString(turn.Content) + "</p>\n", nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(turn.Content), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderedTurn pairs a turn with its HTML.
type RenderedTurn struct {
	Role string `json:"role"`
	HTML string `json:"html"`
}

func RenderTranscript(conv domain.Conversation) ([]RenderedTurn, error) {
	out := make([]RenderedTurn, 0, len(conv))
	for _, t := range conv {
		h, err := RenderTurn(t)
		if err != nil {
			return nil, err
		}
		out = append(out, RenderedTurn{Role: t.Role, HTML: h})
	}
	return out, nil
}
