package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scott-cotton/cli"

	"github.com/signadot/seedgen/dirbuild"
	"github.com/signadot/seedgen/libdiff"
)

func openDir(args []string) (*dirbuild.Dir, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("%w: expected at most one directory, got %v", cli.ErrUsage, args)
	}
	dirPath := "."
	if len(args) != 0 {
		dirPath = args[0]
	}
	overrides, err := dirbuild.LoadEnv()
	if err != nil {
		return nil, err
	}
	return dirbuild.OpenDir(dirPath, overrides)
}

func build(cfg *BuildConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Build.Parse(cc, args)
	if err != nil {
		return err
	}
	dir, err := openDir(args)
	if err != nil {
		return err
	}
	// files always render without color
	plan, err := dir.Plan(context.Background(), cfg.indentOpts()...)
	if err != nil {
		return err
	}
	for i := range plan.Files {
		f := &plan.Files[i]
		fmt.Fprintf(os.Stderr, "exporting %s (%d records) to %s\n", f.Type, f.Records, rel(dir, f.Path))
	}
	if cfg.DryRun {
		for i := range plan.Files {
			fmt.Fprintln(cc.Out, plan.Files[i].Path)
		}
		return nil
	}
	return dir.Write(plan)
}

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	dir, err := openDir(args)
	if err != nil {
		return err
	}
	plan, err := dir.Plan(context.Background(), cfg.indentOpts()...)
	if err != nil {
		return err
	}
	diffs, err := dir.Check(plan)
	if err != nil {
		return err
	}
	color := cfg.useColor(cc.Out)
	for i := range diffs {
		fd := &diffs[i]
		name := rel(dir, fd.Path)
		if cfg.Quiet {
			fmt.Fprintln(cc.Out, name)
			continue
		}
		ins, del := libdiff.Stat(fd.Diffs)
		if fd.Missing {
			fmt.Fprintf(cc.Out, "--- /dev/null\n+++ %s\t(missing, +%d)\n", name, ins)
		} else {
			fmt.Fprintf(cc.Out, "--- %s\n+++ %s\t(+%d -%d)\n", name, name, ins, del)
		}
		fmt.Fprint(cc.Out, libdiff.Format(fd.Diffs, color))
	}
	if len(diffs) != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func rel(dir *dirbuild.Dir, p string) string {
	if r, err := filepath.Rel(dir.Root, p); err == nil {
		return r
	}
	return p
}
