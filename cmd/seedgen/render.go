package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/seedgen/eval"
	"github.com/signadot/seedgen/parse"
	"github.com/signadot/seedgen/record"
	"github.com/signadot/seedgen/token"
	"github.com/signadot/seedgen/value"
)

type renderer struct {
	cfg  *RenderConfig
	ser  *record.Serializer
	rule *eval.Rule
	mode record.Mode
	n    int
}

func render(cfg *RenderConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Render.Parse(cc, args)
	if err != nil {
		return err
	}
	r := &renderer{
		cfg: cfg,
		ser: record.NewSerializer(record.WithEncodeOptions(cfg.encOpts(cc.Out)...)),
	}
	if r.mode, err = record.ParseMode(cfg.Mode); err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if cfg.Call != "" && !token.IsConstant(cfg.Call) {
		return fmt.Errorf("%w: -call %q is not a constant name", cli.ErrUsage, cfg.Call)
	}
	if cfg.Call == "" && cfg.Mode != "" {
		return fmt.Errorf("%w: -mode requires -call", cli.ErrUsage)
	}
	if cfg.Prune != "" {
		if r.rule, err = eval.Resolve(cfg.Prune); err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	if len(args) == 0 {
		return r.reader(cc.Out, cc.In, "<stdin>")
	}
	for _, file := range args {
		if err := r.file(cc.Out, file); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) file(w io.Writer, file string) error {
	if file == "-" {
		return r.reader(w, os.Stdin, "<stdin>")
	}
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", file, err)
	}
	defer f.Close()
	return r.reader(w, f, file)
}

func (r *renderer) reader(w io.Writer, in io.Reader, name string) error {
	d, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", name, err)
	}
	docs, err := parse.Parse(d, r.cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", name, err)
	}
	for i, doc := range docs {
		s, err := r.doc(doc)
		if err != nil {
			return fmt.Errorf("%s document %d: %w", name, i, err)
		}
		if r.n > 0 {
			io.WriteString(w, "\n")
		}
		r.n++
		if _, err := io.WriteString(w, s+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) doc(v *value.Value) (string, error) {
	var err error
	if r.rule != nil {
		if v, err = r.rule.Prune(v); err != nil {
			return "", err
		}
	}
	if r.cfg.Call == "" {
		return r.ser.RenderValue(v)
	}
	obj := value.Ext(record.PersistedTag, &record.Object{TypeName: r.cfg.Call, Mode: r.mode, Attributes: v})
	return r.ser.RenderValue(obj)
}
