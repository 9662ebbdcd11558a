// Package delivery formats and sends the signed-in user's copy of a
// completed interpretation. Sending is best-effort: a failure is logged and
// never blocks the reading from reaching its result.
package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"perspective/internal/identity"
	"perspective/internal/reading/models"
	"perspective/pkg/email"
)

// Message is one outbound interpretation copy.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a composed message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Compose renders the interpretation into a plain-text message for the
// record's address.
func Compose(rec *identity.Record, s *models.Session) Message {
	name := rec.Name
	if name == "" {
		name = email.DisplayName(rec.Email)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", name)
	if s.Spread != nil {
		fmt.Fprintf(&b, "Here is your %s reading", s.Spread.Name)
		if s.Question != "" {
			fmt.Fprintf(&b, " for %q", s.Question)
		}
		b.WriteString(".\n\n")
	}
	if s.Interpretation != nil {
		fmt.Fprintf(&b, "%s\n\n", s.Interpretation.Summary)
		for _, pull := range s.Pulls {
			insight, ok := s.Interpretation.InsightFor(pull.Position.Title)
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "%s — %s\n%s\n\n", pull.Position.Title, pull.Card.Name, insight)
		}
		fmt.Fprintf(&b, "Primary mindset shift: %s\n", s.Interpretation.FinalGuidance)
	}

	return Message{
		To:      rec.Email,
		Subject: fmt.Sprintf("Your Perspective reading: %s", string(s.Category)),
		Body:    b.String(),
	}
}

// LogSender records deliveries in the log instead of sending mail. It stands
// in for a real mail provider in development.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.InfoContext(ctx, "interpretation copy delivered",
		"to", msg.To,
		"subject", msg.Subject,
		"bytes", len(msg.Body),
	)
	return nil
}
