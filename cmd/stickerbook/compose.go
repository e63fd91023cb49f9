package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/stickerbook/internal/editor"
	"github.com/example/stickerbook/internal/export"
)

// composeCmd runs editor commands headless and exports the result.
type composeCmd struct {
	background  string
	output      string
	format      string
	script      string
	assetDir    string
	toClipboard bool
	ops         []string
	stdin       io.Reader
	*root
	fs *flag.FlagSet
}

func (c *composeCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseComposeCmd(args []string, r *root) (*composeCmd, error) {
	fs := flag.NewFlagSet("compose", flag.ExitOnError)
	c := &composeCmd{root: r, fs: fs, stdin: os.Stdin}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.background, "background", "", "background image file")
	fs.StringVar(&c.output, "output", "", "output file path")
	fs.StringVar(&c.format, "format", "", "output format: png, jpeg or pdf (defaults to the output extension)")
	fs.StringVar(&c.script, "script", "", "file with one command per line, or - for stdin")
	fs.StringVar(&c.assetDir, "assets", "", "sticker directory (defaults to the configured or bundled pack)")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&c.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	c.ops = fs.Args()
	if c.output == "" && !c.toClipboard {
		return nil, &UsageError{of: c, msg: "-output or -to-clipboard is required"}
	}
	if c.script != "" && len(c.ops) > 0 {
		return nil, &UsageError{of: c, msg: "use either -script or command arguments, not both"}
	}
	if c.format != "" {
		if _, err := export.ParseFormat(c.format); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *composeCmd) commands() (io.Reader, func(), error) {
	switch c.script {
	case "":
		return strings.NewReader(strings.Join(c.ops, "\n")), func() {}, nil
	case "-":
		return c.stdin, func() {}, nil
	}
	f, err := os.Open(c.script)
	if err != nil {
		return nil, nil, fmt.Errorf("open script: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func (c *composeCmd) Run() error {
	cfg := c.cfg()
	cat, err := openCatalog(cfg, c.assetDir)
	if err != nil {
		return err
	}
	ctx := context.Background()
	ctl := editor.New(append(editorOptions(cfg),
		editor.WithLoader(cat.library),
		editor.WithNotifier(editor.NoticeFunc(func(msg string) {
			fmt.Fprintf(os.Stderr, "notice: %s\n", msg)
		})),
	)...)

	if c.background != "" {
		bg, err := decodeFile(cfg, c.background)
		if err != nil {
			return fmt.Errorf("failed to load background: %w", err)
		}
		ctl.SetBackground(bg)
	}

	script, done, err := c.commands()
	if err != nil {
		return err
	}
	defer done()
	if err := editor.Replay(ctx, ctl, script, openFile); err != nil {
		return fmt.Errorf("compose: %w", err)
	}

	if c.output != "" {
		if err := c.writeOutput(ctl); err != nil {
			return err
		}
	}
	if c.toClipboard {
		img, err := ctl.Flatten()
		if err != nil {
			return err
		}
		if err := writeClipboardFn(img); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		c.notifyCopy("composition")
	}
	return nil
}

func (c *composeCmd) writeOutput(ctl *editor.Controller) error {
	format := export.FormatForPath(c.output)
	if c.format != "" {
		format, _ = export.ParseFormat(c.format)
	}
	if dir := filepath.Dir(c.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(c.output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.output, err)
	}
	if err := ctl.Export(f, format); err != nil {
		_ = f.Close()
		_ = os.Remove(c.output)
		return fmt.Errorf("failed to export: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	c.notifyExport(c.output)
	fmt.Fprintf(os.Stderr, "wrote %s\n", c.output)
	return nil
}
