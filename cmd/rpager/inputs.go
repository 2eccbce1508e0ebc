package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	apppkg "github.com/kk-code-lab/rpager/internal/app"
	"github.com/kk-code-lab/rpager/internal/fs"
	"github.com/kk-code-lab/rpager/internal/logx"
	"github.com/kk-code-lab/rpager/internal/source"
	"pkt.systems/pslog"
)

const stdinName = "-"

var errNoInput = errors.New(`missing filename ("rpager --help" for help)`)

// openInputs turns command-line arguments into pager inputs. With no
// arguments standard input is paged, unless it is a terminal. "-" names
// standard input explicitly. Files that look binary are refused unless force
// is set.
func openInputs(args []string, stdin *os.File, logger pslog.Logger, force bool) ([]apppkg.Input, error) {
	if len(args) == 0 {
		if stdin == nil || term.IsTerminal(int(stdin.Fd())) {
			return nil, errNoInput
		}
		args = []string{stdinName}
	}

	inputs := make([]apppkg.Input, 0, len(args))
	fail := func(err error) ([]apppkg.Input, error) {
		for _, in := range inputs {
			_ = in.Source.Close()
		}
		return nil, err
	}

	usedStdin := false
	for _, arg := range args {
		if arg == stdinName {
			if usedStdin || stdin == nil {
				return fail(fmt.Errorf("standard input can only be paged once"))
			}
			usedStdin = true
			inputs = append(inputs, apppkg.Input{
				Name:   stdinName,
				Source: source.NewStreamSource(stdin, source.WithLogger(logx.WithDocument(logger, stdinName))),
			})
			continue
		}

		f, err := openFile(arg, force)
		if err != nil {
			return fail(err)
		}
		inputs = append(inputs, apppkg.Input{
			Name:   arg,
			Source: source.NewStreamSource(f, source.WithLogger(logx.WithDocument(logger, arg))),
		})
	}
	return inputs, nil
}

func openFile(path string, force bool) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if !force && info.Mode().IsRegular() {
		binary, err := fs.LooksBinary(path, f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if binary {
			_ = f.Close()
			return nil, fmt.Errorf("%s may be a binary file (use --force to page it anyway)", path)
		}
	}
	return f, nil
}
