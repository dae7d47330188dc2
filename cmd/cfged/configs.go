package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='force colored output'"`
	NoColor bool `cli:"name=nocolor desc='disable colored output'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// palette renders the labelled parts of output, colored only when the
// destination is a terminal or -color forces it.
type palette struct {
	group func(format string, a ...any) string
	key   func(format string, a ...any) string
	dim   func(format string, a ...any) string
	add   func(format string, a ...any) string
	del   func(format string, a ...any) string
	chg   func(format string, a ...any) string
}

func (cfg *MainConfig) palette(w io.Writer) *palette {
	on := cfg.Color
	if !on && !cfg.NoColor {
		if f, ok := w.(*os.File); ok {
			on = isatty.IsTerminal(f.Fd())
		}
	}
	if !on {
		return &palette{
			group: fmt.Sprintf,
			key:   fmt.Sprintf,
			dim:   fmt.Sprintf,
			add:   fmt.Sprintf,
			del:   fmt.Sprintf,
			chg:   fmt.Sprintf,
		}
	}
	return &palette{
		group: color.New(color.FgCyan, color.Bold).Sprintf,
		key:   color.New(color.FgWhite, color.Bold).Sprintf,
		dim:   color.New(color.Faint).Sprintf,
		add:   color.New(color.FgGreen).Sprintf,
		del:   color.New(color.FgRed).Sprintf,
		chg:   color.New(color.FgYellow).Sprintf,
	}
}

type ViewConfig struct {
	*MainConfig

	Descriptions bool `cli:"name=d desc='include field descriptions'"`
	Comments     bool `cli:"name=c desc='include field comments'"`

	View *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig

	Set *cli.Command
}

type PatchConfig struct {
	*MainConfig
	DryRun bool `cli:"name=n desc='show what would change without saving'"`

	Patch *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

type SearchConfig struct {
	*MainConfig

	Search *cli.Command
}

type ListConfig struct {
	*MainConfig
	Where string

	List *cli.Command
}

type StoreConfig struct {
	*MainConfig
	Root   string
	Active string

	Store *cli.Command
}
