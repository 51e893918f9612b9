package main

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/seedgen/encode"
	"github.com/signadot/seedgen/parse"
)

type MainConfig struct {
	Color  bool `cli:"name=color desc='render with color'"`
	Indent int  `cli:"name=indent desc='indent with n spaces instead of tabs'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// colorSet reports whether -color was given, as opposed to defaulted.
func (cfg *MainConfig) colorSet() bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" {
			return opt.Value != nil
		}
	}
	return false
}

// useColor is -color if given, otherwise whether w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color || cfg.colorSet() {
		return cfg.Color
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) indentOpts() []encode.EncodeOption {
	if cfg.Indent > 0 {
		return []encode.EncodeOption{encode.Indent(strings.Repeat(" ", cfg.Indent))}
	}
	return nil
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := cfg.indentOpts()
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type RenderConfig struct {
	*MainConfig

	Call     string `cli:"name=call desc='render each document as a create call on this constant'"`
	Mode     string `cli:"name=mode desc='call form: auto, create or create_or_update'"`
	Prune    string `cli:"name=prune desc='prune rule name or expression'"`
	TextKeys bool   `cli:"name=text desc='render mapping keys as strings'"`

	Render *cli.Command
}

func (cfg *RenderConfig) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{parse.ParseTextKeys(cfg.TextKeys)}
}

type BuildConfig struct {
	*MainConfig

	DryRun bool `cli:"name=n aliases=dry-run desc='list the files without writing them'"`

	Build *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Quiet bool `cli:"name=q desc='only list stale files'"`

	Check *cli.Command
}

type HandlersConfig struct {
	*MainConfig

	Models []string
	Rules  bool `cli:"name=rules desc='list named prune rules instead'"`

	Handlers *cli.Command
}
