package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/signadot/seedgen/eval"
	"github.com/signadot/seedgen/record"
)

func handlers(cfg *HandlersConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Handlers.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: handlers takes no arguments, got %v", cli.ErrUsage, args)
	}
	tw := tabwriter.NewWriter(cc.Out, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	hi := fmt.Sprint
	if cfg.useColor(cc.Out) {
		hi = func(a ...any) string { return color.CyanString("%s", fmt.Sprint(a...)) }
	}
	if cfg.Rules {
		for _, name := range eval.Names() {
			fmt.Fprintf(tw, "%s\t%s\n", hi(name), eval.Lookup(name))
		}
		return nil
	}
	reg := record.NewSerializer(record.WithModels(cfg.Models...)).Registry()
	for i, e := range reg.Entries() {
		kind := "tag"
		if e.Match != nil {
			kind = "match"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, hi(e.Tag), kind, strings.Join(reg.Lineage(e.Tag)[1:], " < "))
	}
	for _, m := range cfg.Models {
		fmt.Fprintf(tw, "-\t%s\tmodel\t%s\n", hi(m), strings.Join(reg.Lineage(m)[1:], " < "))
	}
	return nil
}
