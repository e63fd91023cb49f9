package main

import (
	"flag"
	"fmt"
	"image"

	"github.com/example/stickerbook/internal/appstate"
	"github.com/example/stickerbook/internal/capture"
	"github.com/example/stickerbook/internal/export"
)

// runWindow blocks until the editor window closes. Tests replace it.
var runWindow = func(a *appstate.AppState) { a.Run() }

// editCmd opens the interactive editor.
type editCmd struct {
	background    string
	output        string
	assetDir      string
	format        string
	capture       bool
	interactive   bool
	fromClipboard bool
	*root
	fs *flag.FlagSet
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.background, "background", "", "image file to use as the background")
	fs.BoolVar(&e.capture, "capture", false, "start from a screenshot of the desktop")
	fs.BoolVar(&e.interactive, "select", false, "let the screenshot portal ask for a region (with -capture)")
	fs.BoolVar(&e.fromClipboard, "from-clipboard", false, "start from the image on the clipboard")
	fs.BoolVar(&e.fromClipboard, "from-clip", false, "start from the image on the clipboard (alias)")
	fs.StringVar(&e.assetDir, "assets", "", "sticker directory (defaults to the configured or bundled pack)")
	fs.StringVar(&e.output, "output", "", "export path (defaults to the save directory)")
	fs.StringVar(&e.format, "format", "", "export format when no output path is given: png, jpeg or pdf")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	sources := 0
	for _, set := range []bool{e.background != "", e.capture, e.fromClipboard} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, &UsageError{of: e, msg: "choose only one of -background, -capture and -from-clipboard"}
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: e, msg: fmt.Sprintf("unexpected argument %q", fs.Arg(0))}
	}
	return e, nil
}

// loadBackground returns the starting background, or nil to start empty.
func (e *editCmd) loadBackground() (image.Image, error) {
	cfg := e.cfg()
	switch {
	case e.background != "":
		img, err := decodeFile(cfg, e.background)
		if err != nil {
			return nil, fmt.Errorf("failed to load background: %w", err)
		}
		return img, nil
	case e.capture:
		img, err := captureScreenshotFn(capture.Options{Interactive: e.interactive})
		if err != nil {
			return nil, fmt.Errorf("failed to capture screen: %w", err)
		}
		e.notifyCapture("screen", img)
		return img, nil
	case e.fromClipboard:
		img, err := readClipboardFn()
		if err != nil {
			return nil, fmt.Errorf("failed to read clipboard image: %w", err)
		}
		return img, nil
	}
	return nil, nil
}

func (e *editCmd) Run() error {
	bg, err := e.loadBackground()
	if err != nil {
		return err
	}
	cfg := e.cfg()
	cat, err := openCatalog(cfg, e.assetDir)
	if err != nil {
		return err
	}
	format := defaultFormat(cfg)
	if e.format != "" {
		if format, err = export.ParseFormat(e.format); err != nil {
			return err
		}
	}
	opts := []appstate.Option{
		appstate.WithPalette(cat.palette),
		appstate.WithLibrary(cat.library),
		appstate.WithTheme(e.activeTheme),
		appstate.WithOutput(e.output),
		appstate.WithFormat(format),
		appstate.WithSaveDir(cfg.SaveDir),
		appstate.WithBatchSize(cfg.Editor.BatchSize),
		appstate.WithWatchDir(cat.dir),
		appstate.WithNotifier(e.notifier),
		appstate.WithEditorOptions(editorOptions(cfg)...),
	}
	if bg != nil {
		opts = append(opts, appstate.WithBackground(bg))
	}
	runWindow(appstate.New(opts...))
	return nil
}
