package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts,
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		})

	return cli.NewCommandAt(&cfg.Main, "cfged").
		WithSynopsis("cfged [opts] command [opts]").
		WithDescription("cfged edits game config files without disturbing their formatting.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return cfgedMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			GetCommand(cfg),
			SetCommand(cfg),
			PatchCommand(cfg),
			DiffCommand(cfg),
			SearchCommand(cfg),
			ListCommand(cfg),
			StoreCommand(cfg))
}

func cfgedMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithSynopsis("view [-d] [-c] file [files]").
		WithDescription("Show a config file's groups and fields").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("get").
		WithSynopsis("get file group key").
		WithDescription("Print one field's value").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("set").
		WithSynopsis("set file group key value").
		WithDescription("Change one field's value and save the file in place").
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
	cfg.Set = cmd
	return cmd
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithAliases("p").
		WithSynopsis("patch [-n] file [patchfile]").
		WithDescription("Apply a JSON merge patch {group: {key: value}} and save").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("diff").
		WithAliases("d").
		WithSynopsis("diff fileA fileB").
		WithDescription("Compare two config files field by field").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func SearchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SearchConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("search").
		WithAliases("s").
		WithSynopsis("search query file [files]").
		WithDescription("Search field names, descriptions and values").
		WithRun(func(cc *cli.Context, args []string) error {
			return searchRun(cfg, cc, args)
		})
	cfg.Search = cmd
	return cmd
}

func ListCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ListConfig{MainConfig: mainCfg}
	opts := []*cli.Opt{
		{
			Name:        "where",
			Description: "filter fields with an expression over {group, key, value, description, comment, dirty, shape}",
			Type: cli.NamedFuncOpt(func(_ *cli.Context, a string) (any, error) {
				cfg.Where = a
				return a, nil
			}, "(expr)"),
		},
	}
	cmd := cli.NewCommand("list").
		WithAliases("ls").
		WithSynopsis("list [-where expr] file [files]").
		WithDescription("List fields, optionally filtered by an expression").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return list(cfg, cc, args)
		})
	cfg.List = cmd
	return cmd
}

func StoreCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &StoreConfig{MainConfig: mainCfg}
	opts := []*cli.Opt{
		{
			Name:        "root",
			Description: "store directory (default $XDG_DATA_HOME/cfged/saved)",
			Type: cli.NamedFuncOpt(func(_ *cli.Context, a string) (any, error) {
				cfg.Root = a
				return a, nil
			}, "(dir)"),
		},
		{
			Name:        "active",
			Description: "directory holding the live config pair (default .)",
			Type: cli.NamedFuncOpt(func(_ *cli.Context, a string) (any, error) {
				cfg.Active = a
				return a, nil
			}, "(dir)"),
		},
	}
	cmd := cli.NewCommand("store").
		WithSynopsis("store [-root dir] [-active dir] save|load|list|delete|info [name]").
		WithDescription("Manage named saved configuration pairs").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return storeRun(cfg, cc, args)
		})
	cfg.Store = cmd
	return cmd
}
