package dirbuild

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/sync/errgroup"

	"github.com/signadot/seedgen/debug"
	"github.com/signadot/seedgen/encode"
	"github.com/signadot/seedgen/eval"
	"github.com/signadot/seedgen/libdiff"
	"github.com/signadot/seedgen/parse"
	"github.com/signadot/seedgen/record"
	"github.com/signadot/seedgen/registry"
	"github.com/signadot/seedgen/value"
)

// Plan is the complete set of files a build produces. Nothing is
// written until Write.
type Plan struct {
	Files []PlanFile
}

type PlanFile struct {
	// Path is where the file goes, DestDir included.
	Path    string
	Type    string
	Source  string
	Records int
	Content []byte
}

// FileDiff is a planned file differing from the file on disk.
type FileDiff struct {
	Path    string
	Missing bool
	Diffs   []diffpatch.Diff
}

// Plan renders every source, concurrently, into the files it would
// write. An error in any record aborts the whole plan.
func (dir *Dir) Plan(ctx context.Context, opts ...encode.EncodeOption) (*Plan, error) {
	rule, err := dir.pruneRule()
	if err != nil {
		return nil, err
	}
	models := registry.New()
	for typeName, parent := range dir.Models {
		if parent == "" {
			parent = record.PersistedTag
		}
		models = models.Extend(typeName, parent)
	}
	ser := record.NewSerializer(record.WithOverrides(models), record.WithEncodeOptions(opts...))

	results := make([][]PlanFile, len(dir.Sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range dir.Sources {
		g.Go(func() error {
			files, err := dir.planSource(gctx, &dir.Sources[i], ser, rule)
			if err != nil {
				return err
			}
			results[i] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	plan := &Plan{}
	seen := map[string]string{}
	for _, files := range results {
		for _, f := range files {
			if other, ok := seen[f.Path]; ok {
				return nil, fmt.Errorf("%w: %s and %s both write %s, give one a name", ErrConflict, other, f.Source, f.Path)
			}
			seen[f.Path] = f.Source
			plan.Files = append(plan.Files, f)
		}
	}
	return plan, nil
}

func (dir *Dir) pruneRule() (*eval.Rule, error) {
	if dir.Prune == "" || dir.Prune == "none" {
		return nil, nil
	}
	rule, err := eval.Resolve(dir.Prune)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return rule, nil
}

func (dir *Dir) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{parse.ParseTextKeys(dir.TextKeys)}
}

func (dir *Dir) planSource(ctx context.Context, src *DirSource, ser *record.Serializer, rule *eval.Rule) ([]PlanFile, error) {
	srcErr := func(i int, err error) error {
		return &SourceError{File: src.File, Record: i, Err: err}
	}
	d, err := os.ReadFile(dir.path(src.File))
	if err != nil {
		return nil, srcErr(-1, err)
	}
	docs, err := parse.Parse(d, dir.parseOpts()...)
	if err != nil {
		return nil, srcErr(-1, err)
	}
	var recs []*value.Value
	for _, doc := range docs {
		if doc.Kind == value.SequenceKind {
			recs = append(recs, doc.Items...)
		} else {
			recs = append(recs, doc)
		}
	}
	patch, err := dir.loadPatch(src)
	if err != nil {
		return nil, srcErr(-1, err)
	}
	mode, _ := record.ParseMode(src.Mode)
	tag := record.PersistedTag
	if _, ok := dir.Models[src.Type]; ok {
		tag = src.Type
	}
	if debug.Build() {
		debug.Logf("rendering %d %s records from %s\n", len(recs), src.Type, src.File)
	}
	rendered := make([]string, len(recs))
	for i, rec := range recs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if rec.Kind != value.MappingKind {
			return nil, srcErr(i, fmt.Errorf("%w: want Mapping got %s", ErrConfig, rec.Kind))
		}
		if patch != nil {
			if rec, err = patch.apply(rec, dir.parseOpts()...); err != nil {
				return nil, srcErr(i, err)
			}
		}
		if rule != nil {
			if rec, err = rule.Prune(rec); err != nil {
				return nil, srcErr(i, err)
			}
		}
		rec = markRaw(rec, dir.RawMarkers)
		obj := value.Ext(tag, &record.Object{TypeName: src.Type, Mode: mode, Attributes: rec})
		s, err := ser.RenderValue(obj)
		if err != nil {
			return nil, srcErr(i, err)
		}
		rendered[i] = s
	}
	return dir.batch(src, rendered), nil
}

func (dir *Dir) batch(src *DirSource, rendered []string) []PlanFile {
	size := dir.BatchSize
	if size < 0 || len(rendered) <= size {
		return []PlanFile{dir.planFile(src, 0, rendered)}
	}
	var files []PlanFile
	for n, start := 1, 0; start < len(rendered); n, start = n+1, start+size {
		files = append(files, dir.planFile(src, n, rendered[start:min(start+size, len(rendered))]))
	}
	return files
}

func (dir *Dir) planFile(src *DirSource, n int, rendered []string) PlanFile {
	var buf bytes.Buffer
	for _, r := range rendered {
		buf.WriteString(r)
		buf.WriteString("\n\n")
	}
	return PlanFile{
		Path:    filepath.Join(dir.DestDir, filepath.FromSlash(FileFor(src.OutputName(), n))),
		Type:    src.Type,
		Source:  src.File,
		Records: len(rendered),
		Content: buf.Bytes(),
	}
}

// markRaw turns strings containing a marker into Ruby code.
func markRaw(v *value.Value, markers []string) *value.Value {
	if len(markers) == 0 {
		return v
	}
	switch v.Kind {
	case value.TextKind:
		for _, m := range markers {
			if strings.Contains(v.Text, m) {
				return value.FromRaw(v.Text)
			}
		}
		return v
	case value.SequenceKind:
		items := make([]*value.Value, len(v.Items))
		for i, item := range v.Items {
			items[i] = markRaw(item, markers)
		}
		return value.FromSeq(items...)
	case value.MappingKind:
		pairs := make([]value.Pair, len(v.Pairs))
		for i, p := range v.Pairs {
			pairs[i] = value.Field(p.Key, markRaw(p.Value, markers))
		}
		return value.FromPairs(pairs...)
	}
	return v
}

// Write writes every planned file, creating directories as needed.
func (dir *Dir) Write(plan *Plan) error {
	for i := range plan.Files {
		f := &plan.Files[i]
		if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(f.Path, f.Content, 0o644); err != nil {
			return err
		}
		if debug.Build() {
			debug.Logf("wrote %s (%d records)\n", f.Path, f.Records)
		}
	}
	return nil
}

// Check compares the plan with the files on disk and returns the files
// which Write would change.
func (dir *Dir) Check(plan *Plan) ([]FileDiff, error) {
	var res []FileDiff
	for i := range plan.Files {
		f := &plan.Files[i]
		d, err := os.ReadFile(f.Path)
		if errors.Is(err, os.ErrNotExist) {
			res = append(res, FileDiff{Path: f.Path, Missing: true, Diffs: libdiff.Lines("", string(f.Content))})
			continue
		}
		if err != nil {
			return nil, err
		}
		diffs := libdiff.Lines(string(d), string(f.Content))
		if libdiff.Changed(diffs) {
			res = append(res, FileDiff{Path: f.Path, Diffs: diffs})
		}
	}
	return res, nil
}
