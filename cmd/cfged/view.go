package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/lmutools/cfged"
	"github.com/lmutools/cfged/doc"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: view requires at least one file", cli.ErrUsage)
	}
	pal := cfg.palette(cc.Out)
	for i, arg := range args {
		if len(args) > 1 {
			if i > 0 {
				fmt.Fprintln(cc.Out)
			}
			fmt.Fprintln(cc.Out, pal.dim("# %s", arg))
		}
		d, err := cfged.Load(arg)
		if err != nil {
			return err
		}
		if err := viewDoc(cfg, cc, pal, d); err != nil {
			return err
		}
	}
	return nil
}

func viewDoc(cfg *ViewConfig, cc *cli.Context, pal *palette, d *doc.Document) error {
	for _, w := range d.Warnings {
		fmt.Fprintln(cc.Out, pal.chg("# warning: %v", w))
	}
	for _, gv := range doc.ListGroups(d) {
		name := gv.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintln(cc.Out, pal.group("[%s]", name))
		fvs, err := doc.ListFields(d, gv.Name)
		if err != nil {
			return err
		}
		for _, fv := range fvs {
			line := fmt.Sprintf("  %s = %s", pal.key("%s", fv.Key), fv.Value)
			if cfg.Comments && fv.Comment != "" {
				line += pal.dim("  // %s", firstLine(fv.Comment))
			}
			if cfg.Descriptions && fv.Description != "" {
				line += pal.dim("  #: %s", fv.Description)
			}
			fmt.Fprintln(cc.Out, line)
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
