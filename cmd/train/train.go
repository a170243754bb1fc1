// Package train is the interactive flashcard trainer.
package train

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gigurra/chordtrainer/cmd/common"
	"github.com/gigurra/chordtrainer/cmd/common/chordstack"
	"github.com/gigurra/chordtrainer/cmd/common/config"
	"github.com/gigurra/chordtrainer/cmd/common/logging"
	"github.com/gigurra/chordtrainer/cmd/common/stayon"
	"github.com/spf13/cobra"
)

type Params struct {
	LogLevel string `short:"L" help:"Log level for the log file (debug, info, warn, error)." default:"info"`
	Margin   int    `short:"m" help:"Chords kept on each side of the current one." default:"10"`
	NoWatch  bool   `help:"Do not reload settings when the settings file changes."`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "train",
		Short:       "Practice chords in the terminal",
		Long:        "Show a new chord every few seconds, with its neighbours and practice scale.\nTones, qualities and mode are chosen in the menus (press ? for keys) and saved on exit.",
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
	closeLog, err := logging.SetupFile(level)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer closeLog()

	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stack := chordstack.New(
		chordstack.WithMargin(params.Margin),
		chordstack.WithMaxRepeats(settings.MaxRepeats),
		chordstack.WithLogger(slog.Default()),
	)
	slog.Info("training started", "session", stack.ID(), "mode", settings.CurrentMode())

	m := newModel(ctx, settings, stack, stayon.New(), common.CacheDir())
	p := tea.NewProgram(m, tea.WithAltScreen())

	if !params.NoWatch {
		err := config.Watch(ctx, config.Path(), func(s *config.Settings, err error) {
			p.Send(settingsMsg{settings: s, err: err})
		})
		if err != nil {
			slog.Warn("settings will not be reloaded", "error", err)
		}
	}

	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	// stop watching before writing our own settings file
	cancel()

	fm := finalModel.(model)
	if err := config.Save(fm.settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	slog.Info("training stopped", "session", stack.ID())
	return nil
}
