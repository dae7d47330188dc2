package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/scott-cotton/cli"

	"github.com/lmutools/cfged"
	"github.com/lmutools/cfged/doc"
	"github.com/lmutools/cfged/store"
)

func storeRun(cfg *StoreConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Store.Parse(cc, args)
	if err != nil {
		cfg.Store.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: store requires a verb: save, load, list, delete or info", cli.ErrUsage)
	}
	root := cfg.Root
	if root == "" {
		root = defaultStoreRoot()
	}
	active := cfg.Active
	if active == "" {
		active = "."
	}
	s, err := store.Open(root, active)
	if err != nil {
		return err
	}
	verb, args := args[0], args[1:]
	switch verb {
	case "list", "ls":
		if len(args) != 0 {
			return fmt.Errorf("%w: store list takes no arguments", cli.ErrUsage)
		}
		return storeList(cfg, cc, s)
	case "save":
		return storeSave(cc, s, args)
	case "load":
		if len(args) != 1 {
			return fmt.Errorf("%w: store load requires a name", cli.ErrUsage)
		}
		return s.Load(args[0])
	case "delete", "rm":
		if len(args) != 1 {
			return fmt.Errorf("%w: store delete requires a name", cli.ErrUsage)
		}
		return s.Delete(args[0])
	case "info":
		if len(args) != 1 {
			return fmt.Errorf("%w: store info requires a name", cli.ErrUsage)
		}
		return storeInfo(cfg, cc, s, args[0])
	}
	return fmt.Errorf("%w: unknown store verb %q", cli.ErrUsage, verb)
}

func storeList(cfg *StoreConfig, cc *cli.Context, s *store.Store) error {
	names, err := s.List()
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Fprintln(cc.Out, n)
	}
	return nil
}

// storeSave snapshots the active pair under the given name. Only the
// active files that exist are saved; the pair stays incomplete until
// both do.
func storeSave(cc *cli.Context, s *store.Store, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: store save requires a name", cli.ErrUsage)
	}
	name := args[0]
	var jsonDoc, iniDoc *doc.Document
	jsonPath := filepath.Join(s.ActiveDir, s.JSONName)
	if _, err := os.Stat(jsonPath); err == nil {
		d, err := cfged.Load(jsonPath)
		if err != nil {
			return err
		}
		jsonDoc = d
	}
	iniPath := filepath.Join(s.ActiveDir, s.ININame)
	if _, err := os.Stat(iniPath); err == nil {
		d, err := cfged.Load(iniPath)
		if err != nil {
			return err
		}
		iniDoc = d
	}
	if jsonDoc == nil && iniDoc == nil {
		return fmt.Errorf("no active config files in %s", s.ActiveDir)
	}
	return s.Save(name, jsonDoc, iniDoc)
}

func storeInfo(cfg *StoreConfig, cc *cli.Context, s *store.Store, name string) error {
	info, err := s.Info(name)
	if err != nil {
		return err
	}
	pal := cfg.palette(cc.Out)
	fmt.Fprintln(cc.Out, pal.group("[%s]", info.Name))
	fmt.Fprintf(cc.Out, "  created: %s\n", info.Created.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(cc.Out, "  %s (%d bytes)\n", info.JSONFile, info.JSONSize)
	fmt.Fprintf(cc.Out, "  %s (%d bytes)\n", info.INIFile, info.INISize)
	return nil
}

func defaultStoreRoot() string {
	if x := os.Getenv("XDG_DATA_HOME"); x != "" {
		return filepath.Join(x, "cfged", "saved")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "cfged-saved")
	}
	return filepath.Join(home, ".local", "share", "cfged", "saved")
}
