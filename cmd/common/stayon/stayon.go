// Package stayon keeps the screensaver from starting while the trainer runs.
package stayon

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/GiGurra/cmder"
)

// DefaultPeriod is how often the screensaver is poked.
const DefaultPeriod = 30 * time.Second

// Keeper accumulates elapsed trainer time and tells when the screensaver
// needs to be reset again.
type Keeper struct {
	period  time.Duration
	elapsed time.Duration
	command []string
}

// New returns a keeper using the platform's reset command. It is disabled
// when DISABLE_STAYON is set or the platform has no such command.
func New() *Keeper {
	k := &Keeper{period: DefaultPeriod}
	if _, off := os.LookupEnv("DISABLE_STAYON"); !off {
		k.command = defaultCommand()
	}
	return k
}

// NewWithCommand returns a keeper running the given command every period.
func NewWithCommand(period time.Duration, command ...string) *Keeper {
	return &Keeper{period: period, command: command}
}

func (k *Keeper) Enabled() bool {
	return len(k.command) > 0
}

// Advance adds dt to the elapsed time and reports whether a period is over.
func (k *Keeper) Advance(dt time.Duration) bool {
	if !k.Enabled() {
		return false
	}
	k.elapsed += dt
	if k.elapsed >= k.period {
		k.elapsed = 0
		return true
	}
	return false
}

// Poke runs the reset command once.
func (k *Keeper) Poke(ctx context.Context) error {
	if !k.Enabled() {
		return nil
	}
	result := cmder.New(k.command...).
		WithAttemptTimeout(5 * time.Second).
		Run(ctx)
	if result.Err != nil {
		return fmt.Errorf("failed to reset screensaver with %s: %w", k.command[0], result.Err)
	}
	return nil
}
