package dirbuild

import (
	"fmt"
	"os"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"

	"github.com/signadot/seedgen/parse"
	"github.com/signadot/seedgen/value"
)

// recordPatch holds a source's RFC 6902 patches and RFC 7386 merge patch.
type recordPatch struct {
	patches []jsonpatch.Patch
	merge   []byte
}

func (dir *Dir) loadPatch(src *DirSource) (*recordPatch, error) {
	if len(src.Patches) == 0 && src.MergePatch == "" {
		return nil, nil
	}
	rp := &recordPatch{}
	for _, p := range src.Patches {
		d, err := readJSON(dir.path(p))
		if err != nil {
			return nil, err
		}
		patch, err := jsonpatch.DecodePatch(d)
		if err != nil {
			return nil, fmt.Errorf("could not decode patch %s: %w", p, err)
		}
		rp.patches = append(rp.patches, patch)
	}
	if src.MergePatch != "" {
		d, err := readJSON(dir.path(src.MergePatch))
		if err != nil {
			return nil, err
		}
		rp.merge = d
	}
	return rp, nil
}

// readJSON reads a YAML or JSON file as JSON.
func readJSON(p string) ([]byte, error) {
	d, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	j, err := yaml.YAMLToJSON(d)
	if err != nil {
		return nil, fmt.Errorf("could not convert %s to json: %w", p, err)
	}
	return j, nil
}

// apply patches rec through its JSON form. Keys of rec keep their
// position and kind; keys added by the patches follow them.
func (rp *recordPatch) apply(rec *value.Value, opts ...parse.ParseOption) (*value.Value, error) {
	d, err := rec.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("record has no JSON form to patch: %w", err)
	}
	for i, p := range rp.patches {
		d, err = p.Apply(d)
		if err != nil {
			return nil, fmt.Errorf("patch %d: %w", i, err)
		}
	}
	if rp.merge != nil {
		d, err = jsonpatch.MergePatch(d, rp.merge)
		if err != nil {
			return nil, fmt.Errorf("merge patch: %w", err)
		}
	}
	res, err := parse.ParseOne(d, opts...)
	if err != nil {
		return nil, err
	}
	return reorder(rec, res), nil
}

func reorder(orig, patched *value.Value) *value.Value {
	if orig == nil {
		return patched
	}
	if orig.Kind == value.AtomKind && patched.Kind == value.TextKind && orig.Text == patched.Text {
		// unchanged atoms went through JSON as strings
		return orig
	}
	if orig.Kind != patched.Kind {
		return patched
	}
	switch patched.Kind {
	case value.SequenceKind:
		if len(orig.Items) != len(patched.Items) {
			return patched
		}
		items := make([]*value.Value, len(patched.Items))
		for i, item := range patched.Items {
			items[i] = reorder(orig.Items[i], item)
		}
		return value.FromSeq(items...)
	case value.MappingKind:
		byName := make(map[string]*value.Value, len(patched.Pairs))
		for i := range patched.Pairs {
			byName[patched.Pairs[i].Key.Name] = patched.Pairs[i].Value
		}
		pairs := make([]value.Pair, 0, len(patched.Pairs))
		for i := range orig.Pairs {
			k := orig.Pairs[i].Key
			v, ok := byName[k.Name]
			if !ok {
				continue
			}
			delete(byName, k.Name)
			pairs = append(pairs, value.Field(k, reorder(orig.Pairs[i].Value, v)))
		}
		for i := range patched.Pairs {
			p := &patched.Pairs[i]
			if _, ok := byName[p.Key.Name]; ok {
				pairs = append(pairs, *p)
			}
		}
		return value.FromPairs(pairs...)
	default:
		return patched
	}
}
