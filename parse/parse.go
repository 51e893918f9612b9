// Package parse reads YAML and JSON documents into value trees.
//
// Mapping order is preserved, as is the literal text of numbers that are
// valid Ruby numeric literals. A few local tags select value kinds that
// have no YAML counterpart:
//
//	!atom, !sym   a symbol, :name
//	!raw          verbatim Ruby code, e.g. !raw FormSection.first
//	!text         a string, even for scalars that look like numbers
package parse

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/signadot/seedgen/debug"
	"github.com/signadot/seedgen/token"
	"github.com/signadot/seedgen/value"
)

const (
	TagAtom = "!atom"
	TagSym  = "!sym"
	TagRaw  = "!raw"
	TagText = "!text"
)

// Parse returns one value per document in d. Documents without a body
// are skipped.
func Parse(d []byte, opts ...ParseOption) ([]*value.Value, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	f, err := parser.ParseBytes(d, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	var res []*value.Value
	for i, doc := range f.Docs {
		if doc == nil || doc.Body == nil {
			continue
		}
		if _, ok := doc.Body.(*ast.CommentGroupNode); ok {
			continue
		}
		p := &docParser{opts: pOpts, anchors: map[string]*value.Value{}}
		v, err := p.node(doc.Body)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		if debug.Parse() {
			debug.Logf("parsed document %d: %s\n", i, v)
		}
		res = append(res, v)
	}
	return res, nil
}

// ParseOne parses d, which must hold exactly one document.
func ParseOne(d []byte, opts ...ParseOption) (*value.Value, error) {
	vs, err := Parse(d, opts...)
	if err != nil {
		return nil, err
	}
	if len(vs) != 1 {
		return nil, fmt.Errorf("%w: want 1 document got %d", ErrParse, len(vs))
	}
	return vs[0], nil
}

type docParser struct {
	opts    *parseOpts
	anchors map[string]*value.Value
}

func (p *docParser) node(n ast.Node) (*value.Value, error) {
	switch n := n.(type) {
	case nil:
		return value.Nil(), nil
	case *ast.NullNode:
		return value.Nil(), nil
	case *ast.BoolNode:
		return value.FromBool(n.Value), nil
	case *ast.IntegerNode:
		if lit := n.Token.Value; token.IsNumber(lit) {
			return value.FromNumber(lit), nil
		}
		return value.FromNumber(fmt.Sprint(n.Value)), nil
	case *ast.FloatNode:
		if lit := n.Token.Value; token.IsNumber(lit) {
			return value.FromNumber(lit), nil
		}
		return value.FromFloat(n.Value), nil
	case *ast.InfinityNode:
		return value.FromFloat(n.Value), nil
	case *ast.NanNode:
		return value.FromRaw("Float::NAN"), nil
	case *ast.StringNode:
		return value.FromString(n.Value), nil
	case *ast.LiteralNode:
		return value.FromString(n.Value.Value), nil
	case *ast.SequenceNode:
		items := make([]*value.Value, 0, len(n.Values))
		for _, e := range n.Values {
			item, err := p.node(e)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return value.FromSeq(items...), nil
	case *ast.MappingNode:
		return p.mapping(n.Values)
	case *ast.MappingValueNode:
		return p.mapping([]*ast.MappingValueNode{n})
	case *ast.TagNode:
		return p.tagged(n)
	case *ast.AnchorNode:
		v, err := p.node(n.Value)
		if err != nil {
			return nil, err
		}
		p.anchors[n.Name.GetToken().Value] = v
		return v, nil
	case *ast.AliasNode:
		name := n.Value.GetToken().Value
		v, ok := p.anchors[name]
		if !ok {
			return nil, posErr(n, fmt.Errorf("%w %q", ErrAlias, name))
		}
		return v, nil
	case *ast.CommentGroupNode:
		return value.Nil(), nil
	default:
		return nil, posErr(n, fmt.Errorf("%w: unsupported node %s", ErrParse, n.Type()))
	}
}

func (p *docParser) tagged(n *ast.TagNode) (*value.Value, error) {
	tag := n.Start.Value
	switch tag {
	case TagAtom, TagSym, TagRaw, TagText, "!!str":
	default:
		if strings.HasPrefix(tag, "!!") {
			return p.node(n.Value)
		}
		return nil, posErr(n, fmt.Errorf("%w %s", ErrUnknownTag, tag))
	}
	s, ok := scalarText(n.Value)
	if !ok {
		return nil, posErr(n, fmt.Errorf("%w: %s applies to scalars only", ErrParse, tag))
	}
	switch tag {
	case TagAtom, TagSym:
		return value.FromAtom(s), nil
	case TagRaw:
		return value.FromRaw(s), nil
	default:
		return value.FromString(s), nil
	}
}

// scalarText is the source text of a scalar, unquoted.
func scalarText(n ast.Node) (string, bool) {
	switch n := n.(type) {
	case nil:
		return "", true
	case *ast.StringNode:
		return n.Value, true
	case *ast.LiteralNode:
		return n.Value.Value, true
	case *ast.NullNode, *ast.BoolNode, *ast.IntegerNode, *ast.FloatNode, *ast.InfinityNode, *ast.NanNode:
		return n.GetToken().Value, true
	}
	return "", false
}

func (p *docParser) mapping(mvs []*ast.MappingValueNode) (*value.Value, error) {
	pairs := make([]value.Pair, 0, len(mvs))
	index := map[value.Key]int{}
	set := func(k value.Key, v *value.Value, replace bool) {
		if i, ok := index[k]; ok {
			if replace {
				pairs[i].Value = v
			}
			return
		}
		index[k] = len(pairs)
		pairs = append(pairs, value.Field(k, v))
	}
	for _, mv := range mvs {
		v, err := p.node(mv.Value)
		if err != nil {
			return nil, err
		}
		if _, ok := mv.Key.(*ast.MergeKeyNode); ok {
			if err := p.merge(mv, v, set); err != nil {
				return nil, err
			}
			continue
		}
		k, err := p.key(mv.Key)
		if err != nil {
			return nil, err
		}
		set(k, v, true)
	}
	return value.FromPairs(pairs...), nil
}

// merge applies a "<<" key: pairs from v, or from each mapping in v,
// are added unless already present.
func (p *docParser) merge(mv *ast.MappingValueNode, v *value.Value, set func(value.Key, *value.Value, bool)) error {
	srcs := []*value.Value{v}
	if v.Kind == value.SequenceKind {
		srcs = v.Items
	}
	for _, src := range srcs {
		if src.Kind != value.MappingKind {
			return posErr(mv, fmt.Errorf("%w: merge of %s", ErrParse, src.Kind))
		}
		for _, pr := range src.Pairs {
			set(pr.Key, pr.Value, false)
		}
	}
	return nil
}

func (p *docParser) key(n ast.Node) (value.Key, error) {
	if mk, ok := n.(*ast.MappingKeyNode); ok {
		n = mk.Value
	}
	switch n := n.(type) {
	case *ast.StringNode:
		if p.opts.textKeys {
			return value.Text(n.Value), nil
		}
		return value.Atom(n.Value), nil
	case *ast.TagNode:
		s, ok := scalarText(n.Value)
		if !ok {
			break
		}
		switch n.Start.Value {
		case TagAtom, TagSym:
			return value.Atom(s), nil
		case TagText, "!!str":
			return value.Text(s), nil
		case TagRaw:
			return value.Expr(s), nil
		}
		return value.Key{}, posErr(n, fmt.Errorf("%w %s", ErrUnknownTag, n.Start.Value))
	case *ast.NullNode:
		return value.Expr("nil"), nil
	case *ast.BoolNode, *ast.IntegerNode, *ast.FloatNode:
		v, err := p.node(n)
		if err != nil {
			return value.Key{}, err
		}
		if v.Kind == value.BoolKind {
			return value.Expr(fmt.Sprint(v.Bool)), nil
		}
		return value.Expr(v.Text), nil
	}
	return value.Key{}, posErr(n, fmt.Errorf("%w: %s", ErrKeyType, n.Type()))
}
