package seedgen

import (
	"errors"
	"testing"

	"github.com/signadot/seedgen/gomap"
	"github.com/signadot/seedgen/registry"
	"github.com/signadot/seedgen/value"
)

type agency struct {
	UniqueID string   `seed:"unique_id,omitempty"`
	Name     string   `seed:"name"`
	Services []string `seed:"services"`
}

func TestRenderValue(t *testing.T) {
	v := value.FromPairs(
		value.Field(value.Atom("name"), value.FromString("Agency 1")),
		value.Field(value.Text("code"), value.FromNumber("3")),
	)
	got, err := RenderValue(v)
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n\tname: \"Agency 1\",\n\t\"code\" => 3\n}"
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestRenderStruct(t *testing.T) {
	tests := []struct {
		in   agency
		want string
	}{
		{
			in:   agency{UniqueID: "a-1", Name: "A", Services: []string{}},
			want: "Agency.create_or_update!(\n\t{\n\t\tunique_id: \"a-1\",\n\t\tname: \"A\",\n\t\tservices: []\n\t}\n)",
		},
		{
			in:   agency{Name: "B", Services: []string{"x"}},
			want: "Agency.create!(\n\t{\n\t\tname: \"B\",\n\t\tservices: [\n\t\t\t\"x\"\n\t\t]\n\t}\n)",
		},
	}
	for _, tt := range tests {
		got, err := RenderStruct("Agency", tt.in)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("got\n%s\nwant\n%s", got, tt.want)
		}
	}
}

func TestRenderStructErrors(t *testing.T) {
	_, err := RenderStruct("Agency", map[int]int{1: 1})
	if !errors.Is(err, gomap.ErrMarshal) {
		t.Errorf("expected marshal error, got %v", err)
	}
	_, err = RenderStruct("agency", agency{Name: "A"})
	if !errors.Is(err, registry.ErrMalformedPayload) {
		t.Errorf("expected malformed payload, got %v", err)
	}
}

func TestRenderCall(t *testing.T) {
	_, err := RenderCall("Agency", true, value.FromString("x"))
	if !errors.Is(err, registry.ErrMalformedPayload) {
		t.Errorf("expected malformed payload, got %v", err)
	}
}
