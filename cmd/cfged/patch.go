package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/lmutools/cfged"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: patch requires a file and optionally a patch file", cli.ErrUsage)
	}
	file := args[0]
	var raw []byte
	if len(args) == 2 && args[1] != "-" {
		raw, err = os.ReadFile(args[1])
	} else {
		raw, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return err
	}

	tr, err := cfged.Open(file)
	if err != nil {
		return err
	}
	n, err := tr.ApplyMergePatch(raw)
	if err != nil {
		return err
	}
	pal := cfg.palette(cc.Out)
	for _, r := range tr.Records() {
		fmt.Fprintf(cc.Out, "%s.%s: %s -> %s\n",
			r.Group, pal.key("%s", r.Key), pal.del("%s", r.Original), pal.add("%s", r.Current))
	}
	if cfg.DryRun || n == 0 {
		return nil
	}
	res, err := cfged.Save(tr)
	if err != nil {
		return err
	}
	fmt.Fprintln(cc.Out, pal.dim("saved %s (%d fields changed)", res.Target, n))
	return nil
}
