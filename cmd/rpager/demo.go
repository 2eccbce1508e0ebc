package main

import (
	"iter"

	"github.com/spf13/cobra"

	apppkg "github.com/kk-code-lab/rpager/internal/app"
	"github.com/kk-code-lab/rpager/internal/overstrike"
	"github.com/kk-code-lab/rpager/internal/source"
	"github.com/kk-code-lab/rpager/internal/styled"
	"pkt.systems/pslog"
)

func newDemoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Page an endless generated document and a styled sample",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPager(cmd, opts, func(pslog.Logger) ([]apppkg.Input, error) {
				return demoInputs(), nil
			})
		},
	}
}

func demoInputs() []apppkg.Input {
	return []apppkg.Input{
		{Name: "counter", Source: source.NewPullSource(source.Counter("line: "))},
		{Name: "styles", Source: source.NewPullSource(styleSample())},
	}
}

// styleSample yields a short man-page style document written with backspace
// overstrike, decoded the same way piped input is.
func styleSample() iter.Seq[[]styled.Run] {
	bold, under := overstrikeBold, overstrikeUnderline
	lines := []string{
		bold("NAME"),
		"       rpager - " + under("incremental") + " terminal pager",
		"",
		bold("SYNOPSIS"),
		"       " + bold("rpager") + " [" + under("FILE") + "...]",
		"",
		bold("DESCRIPTION"),
		"       Input is read only as far as the screen needs.",
		"       Press " + bold("F") + " to follow growing input and " + bold(":n") + " for the next file.",
	}
	return func(yield func([]styled.Run) bool) {
		for _, line := range lines {
			if !yield(overstrike.Decode(line + "\n")) {
				return
			}
		}
	}
}

func overstrikeBold(s string) string {
	out := make([]rune, 0, len(s)*3)
	for _, r := range s {
		out = append(out, r, '\b', r)
	}
	return string(out)
}

func overstrikeUnderline(s string) string {
	out := make([]rune, 0, len(s)*3)
	for _, r := range s {
		out = append(out, '_', '\b', r)
	}
	return string(out)
}
