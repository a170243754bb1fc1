package main

import (
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/chordtrainer/cmd/deck"
	"github.com/gigurra/chordtrainer/cmd/render"
	"github.com/gigurra/chordtrainer/cmd/scale"
	"github.com/gigurra/chordtrainer/cmd/settings"
	"github.com/gigurra/chordtrainer/cmd/train"
	"github.com/spf13/cobra"
)

// Command group IDs
const (
	groupPractice = "practice"
	groupTheory   = "theory"
	groupSetup    = "setup"
)

// withGroup sets the GroupID on a command and returns it
func withGroup(cmd *cobra.Command, group string) *cobra.Command {
	cmd.GroupID = group
	return cmd
}

func main() {
	boa.CmdT[boa.NoParams]{
		Use:     "chordtrainer",
		Short:   "Jazz chord flashcards for the terminal",
		Version: appVersion(),
		Groups: []*cobra.Group{
			{ID: groupPractice, Title: "Practice:"},
			{ID: groupTheory, Title: "Theory:"},
			{ID: groupSetup, Title: "Setup:"},
		},
		SubCmds: []*cobra.Command{
			// Practice
			withGroup(train.Cmd(), groupPractice),
			withGroup(deck.Cmd(), groupPractice),

			// Theory
			withGroup(scale.Cmd(), groupTheory),
			withGroup(render.Cmd(), groupTheory),

			// Setup
			withGroup(settings.Cmd(), groupSetup),
		},
	}.Run()
}

// appVersion is the module version for tagged builds, otherwise "devel"
// plus the short commit when the build recorded one.
func appVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "devel"
	}
	return versionOf(info)
}

func versionOf(info *debug.BuildInfo) string {
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return "devel-" + s.Value[:7]
		}
	}
	return "devel"
}
