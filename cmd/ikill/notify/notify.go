package notify

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"ikill/cmd/ikill/corpus"
)

const (
	AppName        = "ikill"
	Summary        = "Killed processes"
	Icon           = "lock"
	DefaultTimeout = 3000 * time.Millisecond
)

// Message is a single desktop notification.
type Message struct {
	AppName string
	Summary string
	Body    string
	Icon    string
	Timeout time.Duration
}

// Sink delivers a notification.
type Sink interface {
	Send(ctx context.Context, m Message) error
}

// Build returns the summary for the attempted selection. The body lists
// the selected names in selection order, comma separated.
func Build(sel corpus.Selection, timeout time.Duration) Message {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return Message{
		AppName: AppName,
		Summary: Summary,
		Body:    strings.Join(sel.Names(), ", "),
		Icon:    Icon,
		Timeout: timeout,
	}
}

// Announce sends one notification for a non-empty selection. It reports
// what was attempted, not what succeeded.
func Announce(ctx context.Context, sink Sink, sel corpus.Selection, timeout time.Duration) error {
	if sel.Empty() {
		return nil
	}
	if err := sink.Send(ctx, Build(sel, timeout)); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}

// Writer prints the summary as a line of text.
type Writer struct {
	W io.Writer
}

func (w Writer) Send(_ context.Context, m Message) error {
	_, err := fmt.Fprintf(w.W, "%s: %s\n", m.Summary, m.Body)
	return err
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Send(context.Context, Message) error { return nil }
