package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"pkt.systems/pslog"

	"ikill/cmd/ikill/corpus"
	"ikill/cmd/ikill/finder"
	"ikill/cmd/ikill/notify"
	"ikill/cmd/ikill/snapshot"
	"ikill/cmd/ikill/terminate"
)

// confirmFunc asks the operator to approve the termination of sel.
type confirmFunc func(ctx context.Context, sel corpus.Selection) (bool, error)

// pipeline wires one selection-to-termination run.
type pipeline struct {
	source  snapshot.Source
	surface finder.Surface
	sink    notify.Sink
	confirm confirmFunc
	signal  snapshot.Signal
	timeout time.Duration
	stderr  io.Writer
}

// run captures the process table, lets the operator pick, terminates the
// picks and sends the summary. Only a surface or notification failure ends
// the run with an error; per-process failures are reported and skipped.
func (p pipeline) run(ctx context.Context) error {
	log := pslog.Ctx(ctx)

	snap := snapshot.Capture(ctx, p.source)
	c := corpus.Render(ctx, snap)
	if c.Len() == 0 {
		fmt.Fprintln(p.stderr, "no processes to select")
		return nil
	}

	lines, err := p.surface.Select(ctx, c.Texts())
	if errors.Is(err, finder.ErrAborted) {
		log.Debug("selection aborted")
		return nil
	}
	if err != nil {
		return err
	}

	sel := corpus.Resolve(lines)
	log.Debug("selection resolved", "lines", len(lines), "selected", sel.Len())
	if sel.Empty() {
		return nil
	}

	if p.confirm != nil {
		ok, err := p.confirm(ctx, sel)
		if err != nil {
			return err
		}
		if !ok {
			log.Debug("termination declined", "selected", sel.Len())
			return nil
		}
	}

	outcomes := terminate.All(ctx, snap, sel, p.signal, p.stderr)
	log.Debug("termination finished", "attempted", len(outcomes), "failed", len(terminate.Failed(outcomes)))

	return notify.Announce(ctx, p.sink, sel, p.timeout)
}
