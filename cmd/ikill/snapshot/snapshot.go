package snapshot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pkt.systems/pslog"
)

// Signal is the termination request sent to a selected process.
type Signal string

const (
	SignalTerm Signal = "term"
	SignalKill Signal = "kill"
)

var ErrUnknownSignal = errors.New("unknown signal")

// ParseSignal accepts "term"/"kill" and their SIG-prefixed spellings.
func ParseSignal(s string) (Signal, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "sig") {
	case "", "term":
		return SignalTerm, nil
	case "kill":
		return SignalKill, nil
	}
	return "", fmt.Errorf("%w %q (expected term or kill)", ErrUnknownSignal, s)
}

// Handle is one live OS process. The pid is known up front; the name has to
// be asked for and may fail once the process is gone or out of reach.
type Handle interface {
	PID() int32
	Name(ctx context.Context) (string, error)
	Signal(ctx context.Context, sig Signal) error
}

// Source enumerates the processes visible to the current user.
type Source interface {
	Processes(ctx context.Context) ([]Handle, error)
}

// Record is a process as seen at capture time.
type Record struct {
	PID    int32
	handle Handle
}

// Name reads the process name through the live handle.
func (r Record) Name(ctx context.Context) (string, error) {
	return r.handle.Name(ctx)
}

// Signal sends sig to the process.
func (r Record) Signal(ctx context.Context, sig Signal) error {
	return r.handle.Signal(ctx, sig)
}

// Snapshot is the process table captured once per run. It is never mutated
// after Capture returns.
type Snapshot struct {
	records []Record
	index   map[int32]int
}

// Capture enumerates src into a snapshot. An enumeration failure yields an
// empty snapshot so the rest of the run sees nothing to select.
func Capture(ctx context.Context, src Source) Snapshot {
	log := pslog.Ctx(ctx)
	handles, err := src.Processes(ctx)
	if err != nil {
		log.Debug("process enumeration failed", "err", err)
		return Snapshot{}
	}

	s := Snapshot{
		records: make([]Record, 0, len(handles)),
		index:   make(map[int32]int, len(handles)),
	}
	for _, h := range handles {
		if h == nil {
			continue
		}
		pid := h.PID()
		if pid <= 0 {
			continue
		}
		if _, dup := s.index[pid]; dup {
			continue
		}
		s.index[pid] = len(s.records)
		s.records = append(s.records, Record{PID: pid, handle: h})
	}
	log.Debug("snapshot captured", "processes", len(s.records))
	return s
}

// Records returns the records in enumeration order.
func (s Snapshot) Records() []Record {
	return append([]Record(nil), s.records...)
}

func (s Snapshot) Len() int { return len(s.records) }

// Lookup returns the record for pid.
func (s Snapshot) Lookup(pid int32) (Record, bool) {
	i, ok := s.index[pid]
	if !ok {
		return Record{}, false
	}
	return s.records[i], true
}
