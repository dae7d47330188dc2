package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/lmutools/cfged"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 4 {
		return fmt.Errorf("%w: set requires file, group, key and value", cli.ErrUsage)
	}
	file, group, key, value := args[0], args[1], args[2], args[3]
	tr, err := cfged.Open(file)
	if err != nil {
		return err
	}
	if err := tr.SetValue(group, key, value); err != nil {
		return err
	}
	if tr.DirtyCount() == 0 {
		// same value as on disk, nothing to write
		return nil
	}
	res, err := cfged.Save(tr)
	if err != nil {
		return err
	}
	pal := cfg.palette(cc.Out)
	fmt.Fprintln(cc.Out, pal.dim("saved %s (%d bytes)", res.Target, res.Bytes))
	return nil
}
