package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"sort"
	"sync"
)

// Starter sticker pack bundled with Stickerbook.
//
//go:embed pack
var embeddedPack embed.FS

var (
	packOnce sync.Once
	packFS   fs.FS
	packErr  error
)

func loadPack() {
	packFS, packErr = fs.Sub(embeddedPack, "pack")
}

// Pack returns the bundled pack rooted at its catalog files.
func Pack() (fs.FS, error) {
	packOnce.Do(loadPack)
	return packFS, packErr
}

// Open returns dir as a file system, or the bundled pack when dir is empty
// or unusable.
func Open(dir string) (fs.FS, error) {
	if dir != "" {
		info, err := os.Stat(dir)
		if err == nil && info.IsDir() {
			return os.DirFS(dir), nil
		}
		if err == nil {
			err = fmt.Errorf("not a directory")
		}
		log.Printf("assets: %s: %v, using bundled pack", dir, err)
	}
	return Pack()
}

// Stickers lists the sticker files shipped in the bundled pack.
func Stickers() ([]string, error) {
	fsys, err := Pack()
	if err != nil {
		return nil, err
	}
	matches, err := fs.Glob(fsys, path.Join("emojis_svg", "*.svg"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// Sticker returns a copy of a bundled sticker's bytes.
func Sticker(name string) ([]byte, error) {
	fsys, err := Pack()
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("sticker %s not embedded: %w", name, err)
	}
	return data, nil
}
