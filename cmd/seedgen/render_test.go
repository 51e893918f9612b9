package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/signadot/seedgen/eval"
	"github.com/signadot/seedgen/record"
)

func TestRenderReader(t *testing.T) {
	tests := []struct {
		name string
		cfg  RenderConfig
		rule *eval.Rule
		in   string
		want string
	}{
		{
			name: "values",
			in:   "a: 1\n---\n[x]\n",
			want: "{\n\ta: 1\n}\n\n[\n\t\"x\"\n]\n",
		},
		{
			name: "calls",
			cfg:  RenderConfig{Call: "Agency"},
			rule: eval.DefaultPrune,
			in:   "unique_id: a-1\nlogo: null\n",
			want: "Agency.create_or_update!(\n\t{\n\t\tunique_id: \"a-1\"\n\t}\n)\n",
		},
		{
			name: "text keys",
			cfg:  RenderConfig{TextKeys: true},
			in:   `{"a-b": true}`,
			want: "{\n\t\"a-b\" => true\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.MainConfig = &MainConfig{}
			r := &renderer{cfg: &cfg, ser: record.NewSerializer(), rule: tt.rule}
			var buf bytes.Buffer
			if err := r.reader(&buf, strings.NewReader(tt.in), "test"); err != nil {
				t.Fatal(err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("got\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestRenderReaderError(t *testing.T) {
	cfg := RenderConfig{MainConfig: &MainConfig{}, Call: "Agency"}
	r := &renderer{cfg: &cfg, ser: record.NewSerializer()}
	var buf bytes.Buffer
	err := r.reader(&buf, strings.NewReader("- 1\n"), "test")
	if err == nil || !strings.Contains(err.Error(), "test document 0") {
		t.Errorf("got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("partial output %q", buf.String())
	}
}
