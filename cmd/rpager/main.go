package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	apppkg "github.com/kk-code-lab/rpager/internal/app"
	"github.com/kk-code-lab/rpager/internal/config"
	"github.com/kk-code-lab/rpager/internal/logx"
	"pkt.systems/psi"
	"pkt.systems/pslog"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	// Set UTF-8 as fallback encoding for maximum compatibility
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "rpager: %v\n", err)
		return 1
	}
	return 0
}

type rootOptions struct {
	configPath string
	follow     bool
	lookahead  int
	noMouse    bool
	force      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "rpager [FILE...]",
		Short: "Page files or standard input, decoding overstrike highlighting",
		Long: `rpager shows one or more files, or standard input when no file is given.
Input is read only as far ahead as the screen needs, so endless producers can
be paged. Backspace overstrike (man page bold and underline) is shown styled.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPager(cmd, opts, func(logger pslog.Logger) ([]apppkg.Input, error) {
				return openInputs(args, os.Stdin, logger, opts.force)
			})
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to config file (default $RPAGER_CONFIG or <config dir>/rpager/config.toml)")
	flags.BoolVarP(&opts.follow, "follow", "f", false, "keep the view at the end while input grows")
	flags.IntVar(&opts.lookahead, "lookahead", 0, "screens of input to keep loaded below the view")
	flags.BoolVar(&opts.noMouse, "no-mouse", false, "disable mouse wheel scrolling")
	root.Flags().BoolVar(&opts.force, "force", false, "page files even if they look binary")

	root.AddCommand(newDemoCmd(opts))
	return root
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("follow") {
		cfg.Follow = opts.follow
	}
	if opts.lookahead != 0 {
		cfg.LookaheadScreens = opts.lookahead
	}
	if opts.noMouse {
		cfg.Mouse = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runPager(cmd *cobra.Command, opts *rootOptions, open func(pslog.Logger) ([]apppkg.Input, error)) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, logCloser, err := logx.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() {
		_ = logCloser.Close()
	}()
	ctx := pslog.ContextWithLogger(cmd.Context(), logger)

	inputs, err := open(logger)
	if err != nil {
		return err
	}

	app, err := apppkg.NewApplication(inputs,
		apppkg.WithConfig(cfg),
		apppkg.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("initialize pager: %w", err)
	}
	defer func() {
		_ = app.Close()
	}()

	if err := app.Run(ctx); err != nil {
		logx.Ctx(ctx).Error("pager failed", "err", err)
		return err
	}
	return nil
}
