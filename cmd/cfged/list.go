package main

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"

	"github.com/lmutools/cfged"
	"github.com/lmutools/cfged/doc"
)

func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		cfg.List.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: list requires at least one file", cli.ErrUsage)
	}
	var program *vm.Program
	if cfg.Where != "" {
		program, err = expr.Compile(cfg.Where, expr.AsBool(), expr.AllowUndefinedVariables())
		if err != nil {
			return fmt.Errorf("%w: bad -where expression: %v", cli.ErrUsage, err)
		}
	}
	pal := cfg.palette(cc.Out)
	for _, arg := range args {
		d, err := cfged.Load(arg)
		if err != nil {
			return err
		}
		for _, gv := range doc.ListGroups(d) {
			fvs, err := doc.ListFields(d, gv.Name)
			if err != nil {
				return err
			}
			for _, fv := range fvs {
				if program != nil {
					keep, err := match(program, gv.Name, fv)
					if err != nil {
						return err
					}
					if !keep {
						continue
					}
				}
				fmt.Fprintf(cc.Out, "%s.%s = %s\n", gv.Name, pal.key("%s", fv.Key), fv.Value)
			}
		}
	}
	return nil
}

func match(program *vm.Program, group string, fv doc.FieldView) (bool, error) {
	env := map[string]any{
		"group":       group,
		"key":         fv.Key,
		"value":       fv.Value,
		"description": fv.Description,
		"comment":     fv.Comment,
		"dirty":       fv.Dirty,
		"shape":       fv.Shape.String(),
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("-where: %w", err)
	}
	b, ok := out.(bool)
	return ok && b, nil
}
