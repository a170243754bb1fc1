package settings

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/chordtrainer/cmd/common"
	"github.com/gigurra/chordtrainer/cmd/common/config"
	"github.com/gigurra/chordtrainer/cmd/common/theory"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func Cmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:   "settings",
		Short: "Show and change the trainer settings",
		Long:  "Show and change the settings the trainer keeps in " + config.Path() + ". A running trainer picks up changes immediately.",
		SubCmds: []*cobra.Command{
			ShowCmd(),
			PathCmd(),
			SetCmd(),
			ResetCmd(),
		},
	}.ToCobra()
}

type ShowParams struct {
	JSON bool `long:"json" help:"Output as JSON"`
}

func ShowCmd() *cobra.Command {
	return boa.CmdT[ShowParams]{
		Use:         "show",
		Short:       "Show the current settings",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *ShowParams, cmd *cobra.Command, args []string) {
			s, err := config.Load()
			if err == nil {
				err = Show(s, params.JSON, os.Stdout)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

// Show prints the settings as a table, or as the JSON stored on disk.
func Show(s *config.Settings, asJSON bool, out io.Writer) error {
	if asJSON {
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Setting", "Value"})
	t.AppendRows([]table.Row{
		{"tones", joinOrNone(lo.Map(s.AvailablePitches(), func(p theory.Pitch, _ int) string { return p.String() }))},
		{"qualities", joinOrNone(lo.Map(s.AvailableQualities(), func(q theory.Quality, _ int) string { return q.String() }))},
		{"mode", s.Mode},
		{"duration", strconv.Itoa(s.DurationSeconds) + "s"},
		{"font_size", s.FontSize},
		{"score_resolution", strconv.Itoa(s.ScoreResolution) + " dpi"},
		{"single_thread", s.SingleThread},
		{"display_score", s.DisplayScore},
		{"display_scale", s.DisplayScale},
		{"stay_on", s.StayOn},
		{"max_repeats", s.MaxRepeats},
		{"lilypond", s.Lilypond},
	})
	t.Render()
	return nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, " ")
}

func PathCmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:   "path",
		Short: "Print the path of the settings file",
		RunFunc: func(params *boa.NoParams, cmd *cobra.Command, args []string) {
			fmt.Println(config.Path())
		},
	}.ToCobra()
}

type SetParams struct {
	Key   string `pos:"true" required:"true" help:"Setting to change."`
	Value string `pos:"true" required:"true" help:"New value. tones and qualities take a preset or a comma separated list."`
}

func SetCmd() *cobra.Command {
	return boa.CmdT[SetParams]{
		Use:   "set",
		Short: "Change one setting",
		Long: "Change one setting. Known keys: " + strings.Join(config.Keys, ", ") + `

  chordtrainer settings set tones 1-4
  chordtrainer settings set qualities Maj7,alt,7b9
  chordtrainer settings set mode II-V-I`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *SetParams, cmd *cobra.Command, args []string) {
			if err := Set(config.Path(), params.Key, params.Value); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

// Set loads the settings at path, changes one key and saves them again.
func Set(path, key, value string) error {
	s, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	if err := s.Set(key, value); err != nil {
		return err
	}
	return config.SaveFile(path, s)
}

func ResetCmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:   "reset",
		Short: "Restore the default settings",
		RunFunc: func(params *boa.NoParams, cmd *cobra.Command, args []string) {
			if err := config.Save(config.Default()); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Settings reset to defaults")
		},
	}.ToCobra()
}
