package dirbuild

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

var buildFiles = map[string]string{
	"build.yaml": `destDir: out
batchSize: 2
prune: default
rawMarkers: [".where("]
sources:
- type: Agency
  file: agencies.yaml
- type: FormSection
  file: forms.json
  mode: create
  patches: [fix.json]
  mergePatch: defaults.yaml
`,
	"agencies.yaml": `- unique_id: agency-1
  name: Agency 1
  logo: null
  services: []
- name: Agency 2
  forms: "FormSection.where(unique_id: %w[a b])"
- unique_id: agency-3
  name: Agency 3
`,
	"forms.json":    `[{"unique_id": "f1", "name": "Form", "order": 1}]`,
	"fix.json":      `[{"op": "replace", "path": "/name", "value": "Form One"}]`,
	"defaults.yaml": "visible: true\n",
}

func TestPlan(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, buildFiles)
	dir, err := OpenDir(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	plan, err := dir.Plan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]string{}
	for _, f := range plan.Files {
		rel, err := filepath.Rel(root, f.Path)
		if err != nil {
			t.Fatal(err)
		}
		got[filepath.ToSlash(rel)] = string(f.Content)
	}
	want := map[string]string{
		"out/agencies/agency.1.rb": "Agency.create_or_update!(\n\t{\n\t\tunique_id: \"agency-1\",\n\t\tname: \"Agency 1\"\n\t}\n)\n\n" +
			"Agency.create!(\n\t{\n\t\tname: \"Agency 2\",\n\t\tforms: FormSection.where(unique_id: %w[a b])\n\t}\n)\n\n",
		"out/agencies/agency.2.rb":          "Agency.create_or_update!(\n\t{\n\t\tunique_id: \"agency-3\",\n\t\tname: \"Agency 3\"\n\t}\n)\n\n",
		"out/form_sections/form_section.rb": "FormSection.create!(\n\t{\n\t\tunique_id: \"f1\",\n\t\tname: \"Form One\",\n\t\torder: 1,\n\t\tvisible: true\n\t}\n)\n\n",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestWriteCheck(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, buildFiles)
	dir, err := OpenDir(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	plan, err := dir.Plan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	diffs, err := dir.Check(plan)
	if err != nil {
		t.Fatal(err)
	}
	if len(diffs) != len(plan.Files) || !diffs[0].Missing {
		t.Fatalf("expected every file missing, got %+v", diffs)
	}
	if err := dir.Write(plan); err != nil {
		t.Fatal(err)
	}
	if diffs, err = dir.Check(plan); err != nil || len(diffs) != 0 {
		t.Fatalf("expected no diffs after write: %v %+v", err, diffs)
	}
	stale := plan.Files[0].Path
	if err := os.WriteFile(stale, []byte("# edited\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	diffs, err = dir.Check(plan)
	if err != nil {
		t.Fatal(err)
	}
	if len(diffs) != 1 || diffs[0].Path != stale || diffs[0].Missing {
		t.Errorf("expected one stale file, got %+v", diffs)
	}
}

func TestOverrides(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, buildFiles)
	t.Setenv(EnvBuild, "batchSize: -1")
	t.Setenv(EnvDestDir, "elsewhere")
	overrides, err := LoadEnv()
	if err != nil {
		t.Fatal(err)
	}
	dir, err := OpenDir(root, overrides)
	if err != nil {
		t.Fatal(err)
	}
	if dir.DestDir != filepath.Join(root, "elsewhere") || dir.BatchSize != -1 {
		t.Errorf("got destDir %q batchSize %d", dir.DestDir, dir.BatchSize)
	}
	if len(dir.Sources) != 2 {
		t.Errorf("sources lost in merge: %+v", dir.Sources)
	}
	plan, err := dir.Plan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.Files) != 2 || plan.Files[0].Records != 3 {
		t.Errorf("expected unbatched agencies, got %+v", plan.Files)
	}
}

func TestPlanErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		check func(error) bool
	}{
		{
			name:  "no build file",
			files: map[string]string{"x.yaml": "a: 1\n"},
			check: func(err error) bool { return errors.Is(err, ErrNoBuildFile) },
		},
		{
			name:  "bad mode",
			files: map[string]string{"build.yaml": "sources:\n- {type: A, file: a.yaml, mode: upsert}\n"},
			check: func(err error) bool { return errors.Is(err, ErrConfig) },
		},
		{
			name: "record not a mapping",
			files: map[string]string{
				"build.yaml": "sources:\n- {type: A, file: a.yaml}\n",
				"a.yaml":     "- {name: x}\n- 1\n",
			},
			check: func(err error) bool {
				var se *SourceError
				return errors.As(err, &se) && se.File == "a.yaml" && se.Record == 1
			},
		},
		{
			name: "bad type name",
			files: map[string]string{
				"build.yaml": "sources:\n- {type: agency, file: a.yaml}\n",
				"a.yaml":     "- {name: x}\n",
			},
			check: func(err error) bool {
				var se *SourceError
				return errors.As(err, &se) && se.Record == 0
			},
		},
		{
			name: "conflict",
			files: map[string]string{
				"build.yaml": "sources:\n- {type: A, file: a.yaml}\n- {type: A, file: a.yaml}\n",
				"a.yaml":     "- {name: x}\n",
			},
			check: func(err error) bool { return errors.Is(err, ErrConflict) },
		},
		{
			name: "missing source",
			files: map[string]string{
				"build.yaml": "sources:\n- {type: A, file: gone.yaml}\n",
			},
			check: func(err error) bool { return errors.Is(err, os.ErrNotExist) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFiles(t, root, tt.files)
			dir, err := OpenDir(root, nil)
			if err == nil {
				_, err = dir.Plan(context.Background())
			}
			if !tt.check(err) {
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}
