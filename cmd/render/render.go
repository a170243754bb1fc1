package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gen2brain/beeep"
	"github.com/gigurra/chordtrainer/cmd/common"
	"github.com/gigurra/chordtrainer/cmd/common/chordstack"
	"github.com/gigurra/chordtrainer/cmd/common/config"
	"github.com/gigurra/chordtrainer/cmd/common/logging"
	"github.com/gigurra/chordtrainer/cmd/common/score"
	"github.com/gigurra/chordtrainer/cmd/common/theory"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type Params struct {
	All        bool   `short:"a" help:"Render every chord, not only the enabled tones and qualities."`
	Overwrite  bool   `short:"f" help:"Render again even if the image exists."`
	Resolution int    `short:"r" optional:"true" help:"Image resolution in dpi (100, 150, 200 or 300), defaults to the saved setting."`
	Parallel   int    `short:"p" help:"Number of lilypond processes to run at once, 0 for one per CPU core." default:"1"`
	Notify     bool   `short:"n" help:"Show a desktop notification when done."`
	Export     string `short:"e" optional:"true" help:"Also pack the images into this archive (.zip, .tar, .tar.gz or .tar.zst)."`
	LogLevel   string `short:"L" help:"Log level (debug, info, warn, error)." default:"warn"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "render",
		Short:       "Pre-render chord and scale notation",
		Long:        "Render the notation images shown by the trainer ahead of time, so that slow machines do not have to run lilypond while practising.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

// Job is one image to render.
type Job struct {
	key    string
	render func(ctx context.Context) (string, error)
}

// Result summarises a render run.
type Result struct {
	Rendered int
	Failed   int
	Skipped  int // not started because the run was interrupted
	Took     time.Duration
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
	if params.Resolution != 0 {
		if err := settings.Set("score_resolution", strconv.Itoa(params.Resolution)); err != nil {
			return err
		}
	}

	r := score.NewRenderer(common.CacheDir(), settings.Lilypond, settings.ScoreResolution)
	r.Overwrite = params.Overwrite
	if !r.Available() {
		return fmt.Errorf("lilypond not found (%s), set it with: chordtrainer settings set lilypond <path>", settings.Lilypond)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res := Execute(ctx, Jobs(r, settings, params.All), workers(params.Parallel), os.Stdout)
	fmt.Printf("\nRendered %d images to %s in %s", res.Rendered, r.Dir, res.Took.Round(time.Millisecond))
	if res.Failed > 0 {
		fmt.Printf(", %d failed (see above)", res.Failed)
	}
	if res.Skipped > 0 {
		fmt.Printf(", %d skipped", res.Skipped)
	}
	fmt.Println()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("interrupted, %d images not rendered: %w", res.Skipped, err)
	}

	if params.Export != "" {
		n, err := Export(ctx, r.ImageDir(), params.Export)
		if err != nil {
			return fmt.Errorf("failed to export images: %w", err)
		}
		fmt.Printf("Packed %d images into %s\n", n, params.Export)
	}

	if params.Notify {
		msg := fmt.Sprintf("Rendered %d images, %d failed", res.Rendered, res.Failed)
		if err := beeep.Notify("chordtrainer", msg, ""); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: notification failed: %v\n", err)
		}
	}
	if res.Failed > 0 {
		return fmt.Errorf("%d images failed", res.Failed)
	}
	return nil
}

// Jobs lists the chord images the trainer can show for the selected tones
// and qualities, then the scale images they need, each image once. In the
// progression modes those are the chords of every unit resolving to an
// enabled tone, whatever qualities are selected.
func Jobs(r *score.Renderer, settings *config.Settings, all bool) []Job {
	pitches, qualities := settings.AvailablePitches(), settings.AvailableQualities()
	if all {
		pitches, qualities = theory.AllPitches(), theory.AllQualities()
	}
	mode := settings.CurrentMode()
	if len(pitches) == 0 || len(qualities) == 0 {
		// the trainer only shows placeholders then
		return nil
	}

	var chords []chordstack.Entry
	for _, p := range pitches {
		if mode != theory.ModeChord {
			chords = append(chords, chordstack.Unit(p, mode)...)
			continue
		}
		for _, q := range qualities {
			chords = append(chords, chordstack.NewEntry(p, q, mode))
		}
	}
	chords = lo.UniqBy(chords, chordstack.Entry.Key)

	var jobs []Job
	for _, e := range chords {
		jobs = append(jobs, Job{
			key: e.Key(),
			render: func(ctx context.Context) (string, error) {
				return r.RenderChord(ctx, e.Pitch(), e.Quality(), e.Mode())
			},
		})
	}
	scales := lo.Map(chords, func(e chordstack.Entry, _ int) theory.Scale { return e.Scale() })
	for _, s := range lo.Uniq(scales) {
		jobs = append(jobs, Job{
			key: s.Key(),
			render: func(ctx context.Context) (string, error) {
				return r.RenderScale(ctx, s)
			},
		})
	}
	return jobs
}

// Execute runs the jobs, at most parallel at a time, and prints one
// progress line per job.
func Execute(ctx context.Context, jobs []Job, parallel int, out io.Writer) Result {
	start := time.Now()
	var res Result
	var mu sync.Mutex
	done := 0

	report := func(j Job, err error) {
		mu.Lock()
		defer mu.Unlock()
		done++
		if err != nil {
			res.Failed++
			fmt.Fprintf(out, "[%d/%d] %s: %v\n", done, len(jobs), j.key, err)
			return
		}
		res.Rendered++
		fmt.Fprintf(out, "[%d/%d] %s\n", done, len(jobs), j.key)
	}
	skip := func() {
		mu.Lock()
		defer mu.Unlock()
		res.Skipped++
	}

	if parallel <= 1 {
		for i, j := range jobs {
			if ctx.Err() != nil {
				res.Skipped = len(jobs) - i
				break
			}
			_, err := j.render(ctx)
			report(j, err)
		}
	} else {
		var wg sync.WaitGroup
		sem := make(chan struct{}, parallel)
		for _, j := range jobs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				if ctx.Err() != nil {
					skip()
					return
				}
				_, err := j.render(ctx)
				report(j, err)
			}()
		}
		wg.Wait()
	}

	res.Took = time.Since(start)
	return res
}
