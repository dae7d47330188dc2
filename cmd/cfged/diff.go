package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/lmutools/cfged"
	"github.com/lmutools/cfged/compare"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires exactly two files", cli.ErrUsage)
	}
	a, err := cfged.Load(args[0])
	if err != nil {
		return err
	}
	b, err := cfged.Load(args[1])
	if err != nil {
		return err
	}
	pal := cfg.palette(cc.Out)
	diffs := compare.Documents(a, b)
	for _, d := range diffs {
		id := d.Group + "." + d.Key
		switch d.Kind {
		case compare.ValueChanged:
			fmt.Fprintf(cc.Out, "%s %s: %s -> %s\n",
				pal.chg("~"), id, pal.del("%s", d.A), pal.add("%s", d.B))
		case compare.ShapeChanged:
			fmt.Fprintf(cc.Out, "%s %s: shape %s\n", pal.chg("!"), id, d.Shape)
		case compare.FieldRemoved:
			fmt.Fprintf(cc.Out, "%s %s: %s\n", pal.del("-"), id, pal.del("%s", d.A))
		case compare.FieldAdded:
			fmt.Fprintf(cc.Out, "%s %s: %s\n", pal.add("+"), id, pal.add("%s", d.B))
		}
	}
	if len(diffs) > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
