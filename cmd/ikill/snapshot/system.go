package snapshot

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/process"
)

// System is the gopsutil-backed Source for the local machine.
type System struct{}

func (System) Processes(ctx context.Context) ([]Handle, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}
	handles := make([]Handle, 0, len(procs))
	for _, p := range procs {
		handles = append(handles, systemProcess{p: p})
	}
	return handles, nil
}

type systemProcess struct {
	p *process.Process
}

func (s systemProcess) PID() int32 { return s.p.Pid }

func (s systemProcess) Name(ctx context.Context) (string, error) {
	return s.p.NameWithContext(ctx)
}

func (s systemProcess) Signal(ctx context.Context, sig Signal) error {
	if sig == SignalKill {
		return s.p.KillWithContext(ctx)
	}
	return s.p.TerminateWithContext(ctx)
}
