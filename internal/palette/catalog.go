package palette

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log"
	"path"
	"sort"

	"gopkg.in/yaml.v3"
)

// PlaceholderCount is the length of the synthesized fallback list.
const PlaceholderCount = 100

// Meta describes one emoji.
type Meta struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Group string `json:"group"`
}

// CategoryEntry references one emoji of a category by codepoint slug.
type CategoryEntry struct {
	Slug string `json:"slug"`
}

// Category is a named group of emojis.
type Category struct {
	Name   string          `json:"name"`
	Slug   string          `json:"slug"`
	Emojis []CategoryEntry `json:"emojis"`
}

// Aliases maps a search keyword to extra terms, including other languages
// and codepoints.
type Aliases map[string][]string

// Files names the catalog files inside an asset root.
type Files struct {
	Manifest   string
	Metadata   string
	Categories string
	Aliases    string
}

// DefaultFiles are the catalog file names used by the bundled pack.
var DefaultFiles = Files{
	Manifest:   "emoji-manifest.json",
	Metadata:   "emoji-data.json",
	Categories: "emoji-categories.json",
	Aliases:    "aliases.yaml",
}

// ParseManifest reads a JSON array of asset paths and keeps the
// single-codepoint emoji entries.
func ParseManifest(r io.Reader) ([]string, error) {
	var raw []string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	out := raw[:0]
	for _, p := range raw {
		if SingleCodepoint(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ParseMetadata reads emoji metadata keyed by character.
func ParseMetadata(r io.Reader) (map[string]Meta, error) {
	m := map[string]Meta{}
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}
	return m, nil
}

// ParseCategories reads the category list.
func ParseCategories(r io.Reader) ([]Category, error) {
	var cats []Category
	if err := json.NewDecoder(r).Decode(&cats); err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	return cats, nil
}

// ParseAliases reads a YAML keyword table.
func ParseAliases(r io.Reader) (Aliases, error) {
	a := Aliases{}
	if err := yaml.NewDecoder(r).Decode(&a); err != nil && err != io.EOF {
		return nil, fmt.Errorf("aliases: %w", err)
	}
	return a, nil
}

// Placeholders synthesizes a list of sticker paths starting at U+1F600 so
// the palette is never empty.
func Placeholders(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = AssetPath(fmt.Sprintf("%x", 0x1f600+i))
	}
	return out
}

// Load builds a Palette from the catalog files in fsys. Missing or broken
// files are logged and replaced by fallbacks: the sticker directory listing
// or placeholders for the manifest, empty tables for the rest.
func Load(fsys fs.FS, files Files) *Palette {
	assets, err := readWith(fsys, files.Manifest, ParseManifest)
	if err != nil {
		log.Printf("palette: %v", err)
		assets = listStickers(fsys)
		if len(assets) == 0 {
			assets = Placeholders(PlaceholderCount)
		}
	}
	meta, err := readWith(fsys, files.Metadata, ParseMetadata)
	if err != nil {
		log.Printf("palette: %v", err)
	}
	cats, err := readWith(fsys, files.Categories, ParseCategories)
	if err != nil {
		log.Printf("palette: %v", err)
	}
	aliases, err := readWith(fsys, files.Aliases, ParseAliases)
	if err != nil {
		log.Printf("palette: %v", err)
	}
	return New(assets, meta, cats, aliases)
}

func readWith[T any](fsys fs.FS, name string, parse func(io.Reader) (T, error)) (T, error) {
	var zero T
	if name == "" {
		return zero, fmt.Errorf("no file configured")
	}
	f, err := fsys.Open(name)
	if err != nil {
		return zero, err
	}
	defer f.Close()
	return parse(f)
}

func listStickers(fsys fs.FS) []string {
	var out []string
	for _, pattern := range []string{"*.svg", "*.png"} {
		matches, err := fs.Glob(fsys, path.Join(StickerDir, pattern))
		if err != nil {
			continue
		}
		for _, m := range matches {
			if SingleCodepoint(m) {
				out = append(out, m)
			}
		}
	}
	sort.Strings(out)
	return out
}
