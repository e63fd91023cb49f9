package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/stickerbook/internal/palette"
)

// assetsCmd lists palette entries.
type assetsCmd struct {
	category   string
	search     string
	page       int
	categories bool
	assetDir   string
	out        io.Writer
	*root
	fs *flag.FlagSet
}

func (a *assetsCmd) FlagSet() *flag.FlagSet {
	return a.fs
}

func parseAssetsCmd(args []string, r *root) (*assetsCmd, error) {
	fs := flag.NewFlagSet("assets", flag.ExitOnError)
	a := &assetsCmd{root: r, fs: fs, out: os.Stdout}
	fs.Usage = usageFunc(a)
	fs.StringVar(&a.category, "category", palette.AllCategory, "category name or slug")
	fs.StringVar(&a.search, "search", "", "filter by name, keyword or alias")
	fs.IntVar(&a.page, "page", 1, "page number; pages hold the configured batch size")
	fs.BoolVar(&a.categories, "categories", false, "list category names instead of stickers")
	fs.StringVar(&a.assetDir, "assets", "", "sticker directory (defaults to the configured or bundled pack)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if a.page < 1 {
		return nil, &UsageError{of: a, msg: "-page must be at least 1"}
	}
	return a, nil
}

func (a *assetsCmd) Run() error {
	cfg := a.cfg()
	cat, err := openCatalog(cfg, a.assetDir)
	if err != nil {
		return err
	}
	pal := cat.palette
	if a.categories {
		for _, name := range pal.Categories() {
			items, _ := pal.Category(name)
			fmt.Fprintf(a.out, "%s\t%d\n", name, len(items))
		}
		return nil
	}
	if strings.TrimSpace(a.search) == "" {
		if _, ok := pal.Category(a.category); !ok {
			return fmt.Errorf("unknown category %q", a.category)
		}
	}
	items := pal.Filter(a.category, a.search)
	pager := palette.NewPager(items, cfg.Editor.BatchSize)
	page := pager.Page(a.page - 1)
	if page == nil && a.page > 1 {
		return fmt.Errorf("page %d is past the end (%d stickers)", a.page, len(items))
	}
	for _, asset := range page {
		name := pal.Name(asset)
		if ch := palette.Char(asset); ch != "" {
			name = ch + " " + name
		}
		fmt.Fprintf(a.out, "%s\t%s\n", asset, name)
	}
	return nil
}
