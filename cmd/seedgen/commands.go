package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "seedgen").
		WithSynopsis("seedgen [opts] command [opts]").
		WithDescription("seedgen renders records as Ruby seed files.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return seedgenMain(cfg, cc, args)
		}).
		WithSubs(
			RenderCommand(cfg),
			BuildCommand(cfg),
			CheckCommand(cfg),
			HandlersCommand(cfg))
}

func RenderCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RenderConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Render, "render").
		WithAliases("r").
		WithSynopsis("render [-call Type] [-prune rule] [files]").
		WithDescription("render YAML or JSON documents as Ruby values or create calls").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return render(cfg, cc, args)
		})
}

func BuildCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BuildConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Build, "build").
		WithAliases("b").
		WithSynopsis("build [-n] [dir]").
		WithDescription("write the seed files described by dir/build.yaml").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return build(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [-q] [dir]").
		WithDescription("diff the seed files on disk against a fresh build, exit 1 if any are stale").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func HandlersCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &HandlersConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "m",
		Description: "declare a model type",
		Type: cli.NamedFuncOpt(func(_ *cli.Context, a string) (any, error) {
			cfg.Models = append(cfg.Models, a)
			return a, nil
		}, "(Type)"),
	})
	return cli.NewCommandAt(&cfg.Handlers, "handlers").
		WithAliases("h").
		WithSynopsis("handlers [-m Type]... [-rules]").
		WithDescription("list the handlers in resolution order").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return handlers(cfg, cc, args)
		})
}
