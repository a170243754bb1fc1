package deck

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/chordtrainer/cmd/common"
	"github.com/gigurra/chordtrainer/cmd/common/chordstack"
	"github.com/gigurra/chordtrainer/cmd/common/config"
	"github.com/gigurra/chordtrainer/cmd/common/logging"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type Params struct {
	Count     int    `short:"n" help:"Number of chords to print." default:"16"`
	Mode      string `short:"m" optional:"true" help:"Practice mode, defaults to the saved setting." alts:"Chord,II-V-I,II-V,V-I"`
	Tones     string `short:"t" optional:"true" help:"Tones: a preset (all, 1-3, 7-12, ...) or a list like C,F,Bb."`
	Qualities string `short:"q" optional:"true" help:"Qualities: a preset (maj, min, dim, all) or a list like Maj7,alt."`
	Live      bool   `short:"l" help:"Wait the configured duration between chords."`
	Seed      int    `short:"s" optional:"true" help:"Random seed for a reproducible deck (0 = random)." default:"0"`
	LogLevel  string `short:"L" help:"Log level (debug, info, warn, error)." default:"warn"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "deck",
		Short:       "Print a sequence of practice chords",
		Long:        "Print chords the way the trainer would show them: previous, current and next chord plus the practice scale. Uses the saved settings unless overridden.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func Run(params *Params) error {
	level, err := logging.ParseLevel(params.LogLevel)
	if err != nil {
		return err
	}
	logging.SetupStderr(level)

	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inPlace := params.Live && term.IsTerminal(int(os.Stdout.Fd()))
	return Print(ctx, params, settings, os.Stdout, inPlace)
}

// Print writes params.Count chords to out. With inPlace each chord
// overwrites the previous line instead of starting a new one.
func Print(ctx context.Context, params *Params, settings *config.Settings, out io.Writer, inPlace bool) error {
	settings = settings.Clone()
	for key, value := range map[string]string{"mode": params.Mode, "tones": params.Tones, "qualities": params.Qualities} {
		if value == "" {
			continue
		}
		if err := settings.Set(key, value); err != nil {
			return err
		}
	}

	opts := []chordstack.Option{chordstack.WithMaxRepeats(settings.MaxRepeats)}
	if params.Seed != 0 {
		opts = append(opts, chordstack.WithRand(rand.New(rand.NewPCG(uint64(params.Seed), uint64(params.Seed)))))
	}
	stack := chordstack.New(opts...)

	pitches, qualities, mode := settings.AvailablePitches(), settings.AvailableQualities(), settings.CurrentMode()
	stack.Initialize(pitches, qualities, mode)

	for i := range params.Count {
		if i > 0 && params.Live {
			select {
			case <-ctx.Done():
				fmt.Fprintln(out)
				return nil
			case <-time.After(settings.Duration()):
			}
		}

		line := formatLine(i+1, stack, settings.DisplayScale)
		if inPlace {
			fmt.Fprintf(out, "\r\033[K%s", line)
		} else {
			fmt.Fprintln(out, line)
		}
		stack.UpdateStack(pitches, qualities, mode)
	}
	if inPlace {
		fmt.Fprintln(out)
	}
	return nil
}

const nameWidth = 6

func formatLine(n int, stack *chordstack.Stack, withScale bool) string {
	line := fmt.Sprintf("%3d  %s  [%s]  %s",
		n,
		runewidth.FillLeft(stack.PrevEntry().Name(), nameWidth),
		runewidth.FillRight(stack.Current().Name(), nameWidth),
		runewidth.FillRight(stack.NextEntry().Name(), nameWidth),
	)
	if withScale {
		line += "  " + stack.Current().Scale().Name()
	}
	return line
}
