package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/lmutools/cfged"
	"github.com/lmutools/cfged/doc"
	"github.com/lmutools/cfged/search"
)

func searchRun(cfg *SearchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Search.Parse(cc, args)
	if err != nil {
		cfg.Search.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: search requires a query and at least one file", cli.ErrUsage)
	}
	query := args[0]
	var docs []*doc.Document
	for _, arg := range args[1:] {
		d, err := cfged.Load(arg)
		if err != nil {
			return err
		}
		docs = append(docs, d)
	}
	pal := cfg.palette(cc.Out)
	for _, r := range search.New(docs...).Search(query) {
		line := fmt.Sprintf("%s.%s = %s", r.Group, pal.key("%s", r.Key), r.Value)
		line += pal.dim("  (%s match)", r.Kind)
		if r.Kind == search.DescriptionMatch {
			line += pal.dim("  #: %s", r.Description)
		}
		fmt.Fprintln(cc.Out, line)
	}
	return nil
}
