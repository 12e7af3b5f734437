package terminate

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"pkt.systems/pslog"

	"ikill/cmd/ikill/corpus"
	"ikill/cmd/ikill/snapshot"
)

var errorTag = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Render("error")

// Outcome is the result of one termination request.
type Outcome struct {
	PID  int32
	Name string
	Err  error
}

func (o Outcome) OK() bool { return o.Err == nil }

// All signals every snapshot record selected by the operator, one at a time
// in snapshot order. A failure is reported on errw as soon as it happens and
// never stops the remaining requests. Selected pids missing from the
// snapshot are ignored.
func All(ctx context.Context, snap snapshot.Snapshot, sel corpus.Selection, sig snapshot.Signal, errw io.Writer) []Outcome {
	log := pslog.Ctx(ctx)
	var outcomes []Outcome
	for _, rec := range snap.Records() {
		if !sel.Contains(rec.PID) {
			continue
		}
		o := Outcome{PID: rec.PID, Name: sel.Name(rec.PID)}
		o.Err = rec.Signal(ctx, sig)
		if o.Err != nil {
			fmt.Fprintf(errw, "%s: terminate %s (pid %d): %v\n", errorTag, o.Name, o.PID, o.Err)
		}
		log.Debug("terminate", "pid", o.PID, "name", o.Name, "signal", string(sig), "ok", o.OK())
		outcomes = append(outcomes, o)
	}
	return outcomes
}

// Failed returns the outcomes that did not succeed.
func Failed(outcomes []Outcome) []Outcome {
	var out []Outcome
	for _, o := range outcomes {
		if !o.OK() {
			out = append(out, o)
		}
	}
	return out
}
