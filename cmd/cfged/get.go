package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/lmutools/cfged"
	"github.com/lmutools/cfged/doc"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: get requires file, group and key", cli.ErrUsage)
	}
	file, group, key := args[0], args[1], args[2]
	d, err := cfged.Load(file)
	if err != nil {
		return err
	}
	g := d.Group(group)
	if g == nil {
		return fmt.Errorf("%w: %q in %s", doc.ErrNoGroup, group, file)
	}
	f := g.Field(key)
	if f == nil {
		return fmt.Errorf("%w: %s.%s in %s", doc.ErrNoField, group, key, file)
	}
	fmt.Fprintln(cc.Out, f.Value)
	return nil
}
