package main

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/example/stickerbook/assets"
	"github.com/example/stickerbook/internal/config"
	"github.com/example/stickerbook/internal/editor"
	"github.com/example/stickerbook/internal/export"
	"github.com/example/stickerbook/internal/palette"
	"github.com/example/stickerbook/internal/render"
	"github.com/example/stickerbook/internal/sticker"
)

const svgBackgroundSize = 1024

// catalog is the sticker source shared by the commands.
type catalog struct {
	palette *palette.Palette
	library *sticker.Library
	// dir is the on-disk asset directory, empty for the bundled pack.
	dir string
}

func catalogFiles(cfg *config.Config) palette.Files {
	return palette.Files{
		Manifest:   cfg.Manifest,
		Metadata:   cfg.Metadata,
		Categories: cfg.Categories,
		Aliases:    cfg.Aliases,
	}
}

// openCatalog loads the palette from dir, the configured asset directory or
// the bundled pack.
func openCatalog(cfg *config.Config, dir string) (*catalog, error) {
	if dir == "" {
		dir = cfg.AssetDir
	}
	fsys, err := assets.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open assets: %w", err)
	}
	c := &catalog{
		palette: palette.Load(fsys, catalogFiles(cfg)),
		library: sticker.NewLibrary(fsys, sticker.DefaultSize),
	}
	if info, err := os.Stat(dir); dir != "" && err == nil && info.IsDir() {
		c.dir = dir
	}
	return c, nil
}

// editorOptions maps the [editor] config section onto controller options.
func editorOptions(cfg *config.Config) []editor.Option {
	opts := []editor.Option{
		editor.WithStickerSize(float64(cfg.Editor.StickerSize)),
		editor.WithCanvasLimit(float64(cfg.Editor.MaxWidth), float64(cfg.Editor.MaxHeight)),
	}
	if cfg.Editor.Shadow {
		ro := render.DefaultOptions()
		shadow := render.DefaultShadowOptions()
		ro.Shadow = &shadow
		opts = append(opts, editor.WithRenderOptions(ro))
	}
	return opts
}

func defaultFormat(cfg *config.Config) export.Format {
	f, err := export.ParseFormat(cfg.Editor.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, using png\n", err)
		return export.PNG
	}
	return f
}

func openFile(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// decodeFile reads an image file, rasterising SVGs to fit the canvas limit.
func decodeFile(cfg *config.Config, name string) (image.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	size := max(cfg.Editor.MaxWidth, cfg.Editor.MaxHeight)
	if size <= 0 {
		size = svgBackgroundSize
	}
	return sticker.Decode(filepath.Base(name), f, size)
}
