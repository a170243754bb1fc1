package scale

import (
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/chordtrainer/cmd/common"
	"github.com/gigurra/chordtrainer/cmd/common/theory"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type Params struct {
	Pitch   string `pos:"true" optional:"true" help:"Root of the chord, e.g. Bb or F#."`
	Quality string `pos:"true" optional:"true" help:"Chord quality." alts:"Maj7,7,min7,minMaj7,alt,min7b5,dim7,7b9"`
	All     bool   `short:"a" help:"Print the scale of every chord as a table."`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:   "scale",
		Short: "Show the practice scale of a chord",
		Long: `Show the scale to practise over a chord.

  chordtrainer scale Bb min7
  chordtrainer scale --all`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func Run(params *Params, out io.Writer) error {
	if params.All {
		printTable(out)
		return nil
	}
	if params.Pitch == "" || params.Quality == "" {
		return fmt.Errorf("need a pitch and a quality, or --all")
	}

	p, err := theory.ParsePitch(params.Pitch)
	if err != nil {
		return err
	}
	q, err := theory.ParseQuality(params.Quality)
	if err != nil {
		return err
	}
	if !p.Valid() || !q.Valid() {
		return fmt.Errorf("need a real chord, not a placeholder")
	}

	fmt.Fprintf(out, "%s: %s\n", theory.Name(p, q), theory.ScaleOf(p, q).Name())
	return nil
}

func printTable(out io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)

	qualities := theory.AllQualities()
	header := table.Row{""}
	for _, q := range qualities {
		header = append(header, q.Glyph())
	}
	t.AppendHeader(header)

	for _, p := range theory.AllPitches() {
		row := table.Row{p.Glyph()}
		row = append(row, lo.Map(qualities, func(q theory.Quality, _ int) any {
			return theory.ScaleOf(p, q).Name()
		})...)
		t.AppendRow(row)
	}

	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight}})
	t.Render()
}
