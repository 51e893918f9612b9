package encode

import (
	"errors"
	"io"
	"strings"

	"github.com/signadot/seedgen/debug"
	"github.com/signadot/seedgen/registry"
	"github.com/signadot/seedgen/value"
)

var ErrEncoding = errors.New("encoding error")

// EncState is the renderer. It holds no per-call state, so one EncState
// may serve concurrent callers.
type EncState struct {
	reg    *registry.Registry
	unit   string
	depth  int
	colors *Colors
}

func New(reg *registry.Registry, opts ...EncodeOption) *EncState {
	es := &EncState{
		reg:  reg,
		unit: "\t",
	}
	for _, opt := range opts {
		opt(es)
	}
	if es.reg == nil {
		es.reg = Builtins()
	}
	return es
}

// Encode renders v with the default handlers and writes it to w.
func Encode(v *value.Value, w io.Writer, opts ...EncodeOption) error {
	return New(nil, opts...).Write(v, w)
}

func (es *EncState) Registry() *registry.Registry {
	return es.reg
}

// String renders a top level value.
func (es *EncState) String(v *value.Value) (string, error) {
	res, err := es.Encode(v, es.depth)
	if err != nil {
		if debug.Encode() {
			debug.Logf("encode %s: %v\n", v, err)
		}
		return "", err
	}
	if debug.Encode() {
		debug.Logf("encoded %s in %d bytes\n", v, len(res))
	}
	return res, nil
}

// Write renders v and writes it to w only if rendering succeeded.
func (es *EncState) Write(v *value.Value, w io.Writer) error {
	res, err := es.String(v)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, res)
	return err
}

// Encode implements registry.Encoder.
func (es *EncState) Encode(v *value.Value, depth int) (string, error) {
	h, err := es.reg.Resolve(v)
	if err != nil {
		return "", err
	}
	return h(v, depth, es)
}

func (es *EncState) Indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(es.unit, depth)
}

func (es *EncState) Color(k value.Kind, s string) string {
	if es.colors == nil {
		return s
	}
	return es.colors.Color(k, s)
}
