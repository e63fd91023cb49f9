package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseKeepsDefaults(t *testing.T) {
	th, err := Parse(strings.NewReader("Name: mine\n# comment\nselection: #FF000080\nBogus: #000000\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.Name != "mine" {
		t.Errorf("Name = %q", th.Name)
	}
	if th.Selection != (color.RGBA{255, 0, 0, 128}) {
		t.Errorf("Selection = %v", th.Selection)
	}
	if th.Handle != Default().Handle {
		t.Errorf("unset field lost its default")
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Selection: blue\n")); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := ParseColor("#12345"); err == nil {
		t.Fatalf("expected length error")
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, c := range []color.RGBA{{1, 2, 3, 255}, {0xAB, 0xCD, 0xEF, 0x10}} {
		got, err := ParseColor(Hex(c))
		if err != nil || got != c {
			t.Errorf("ParseColor(Hex(%v)) = %v, %v", c, got, err)
		}
	}
}

func TestFieldsCoverEveryColor(t *testing.T) {
	th := Default()
	fields := Fields(th)
	colors := 0
	typ := reflect.TypeOf(*th)
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).Type == rgbaType {
			colors++
		}
	}
	if len(fields) != colors || fields[0].Name != "Background" {
		t.Fatalf("Fields = %d entries, first %q", len(fields), fields[0].Name)
	}
}

func TestLoaderOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ocean.theme"), []byte("Name: Ocean\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	custom := Default()
	custom.Name = "Inline"
	l := &Loader{ConfigDir: dir, Extra: map[string]*Theme{"inline": custom}}

	cases := map[string]string{
		"":                                "Default",
		"dark":                            "Dark",
		"ocean":                           "Ocean",
		"inline":                          "Inline",
		filepath.Join(dir, "ocean.theme"): "Ocean",
	}
	for name, want := range cases {
		th, err := l.Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if th.Name != want {
			t.Errorf("Load(%q).Name = %q want %q", name, th.Name, want)
		}
	}
	if _, err := l.Load("missing"); err == nil {
		t.Fatalf("expected error for missing theme")
	}
	if got := l.Names(); !reflect.DeepEqual(got, []string{"dark", "default", "inline"}) {
		t.Fatalf("Names = %v", got)
	}
}
