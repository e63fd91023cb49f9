package editor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/stickerbook/internal/dnd"
	"github.com/example/stickerbook/internal/geom"
	"github.com/example/stickerbook/internal/gesture"
)

// Opener opens a named file for a script.
type Opener func(name string) (io.ReadCloser, error)

// Replay drives c with a line-oriented gesture script:
//
//	background FILE
//	add ASSET
//	drop ASSET X Y
//	dropfile FILE X Y
//	down X Y | move X Y | up X Y
//	drag X0 Y0 X1 Y1
//	handle br X Y
//	resize DELTA
//	modifier on|off
//	select X Y
//	dup | delete | clear
//
// Blank lines and lines starting with # are skipped. Pending decodes are
// settled after every command.
func Replay(ctx context.Context, c *Controller, r io.Reader, open Opener) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := runCommand(c, strings.Fields(text), open); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := c.Settle(ctx); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return sc.Err()
}

func runCommand(c *Controller, f []string, open Opener) error {
	name, args := strings.ToLower(f[0]), f[1:]
	switch name {
	case "background", "bg":
		if len(args) != 1 {
			return fmt.Errorf("background requires FILE")
		}
		if open == nil {
			return fmt.Errorf("background: no file access")
		}
		file := args[0]
		c.LoadBackground(file, func() (io.ReadCloser, error) { return open(file) })
	case "add":
		if len(args) != 1 {
			return fmt.Errorf("add requires ASSET")
		}
		_, err := c.AddAsset(args[0])
		return err
	case "drop":
		if len(args) != 3 {
			return fmt.Errorf("drop requires ASSET X Y")
		}
		p, err := points(args[1:], 1)
		if err != nil {
			return err
		}
		t := dnd.NewTransfer()
		t.Set(dnd.TypeAsset, args[0])
		return c.Drop(t, p[0])
	case "dropfile":
		if len(args) != 3 {
			return fmt.Errorf("dropfile requires FILE X Y")
		}
		p, err := points(args[1:], 1)
		if err != nil {
			return err
		}
		if open == nil {
			return fmt.Errorf("dropfile: no file access")
		}
		file := args[0]
		t := dnd.NewTransfer()
		t.AddFile(dnd.File{Name: file, Open: func() (io.ReadCloser, error) { return open(file) }})
		return c.Drop(t, p[0])
	case "down", "move", "up", "select":
		p, err := points(args, 1)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		switch name {
		case "down":
			c.PointerDown(p[0])
		case "move":
			c.PointerMove(p[0])
		case "up":
			c.PointerUp(p[0])
		case "select":
			c.PointerDown(p[0])
			c.PointerUp(p[0])
		}
	case "drag":
		p, err := points(args, 2)
		if err != nil {
			return fmt.Errorf("drag: %w", err)
		}
		c.PointerDown(p[0])
		c.PointerMove(p[1])
		c.PointerUp(p[1])
	case "handle":
		if len(args) != 3 {
			return fmt.Errorf("handle requires NAME X Y")
		}
		h, err := gesture.ParseHandle(args[0])
		if err != nil {
			return err
		}
		p, err := points(args[1:], 1)
		if err != nil {
			return err
		}
		return c.HandleDown(h, p[0])
	case "resize":
		if len(args) != 1 {
			return fmt.Errorf("resize requires DELTA")
		}
		d, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("resize: %w", err)
		}
		sel, ok := c.Document().Selected()
		if !ok {
			return nil
		}
		corner := sel.Rect.Max()
		if err := c.HandleDown(gesture.HandleBottomRight, corner); err != nil {
			return err
		}
		end := corner.Add(geom.Pt(d, 0))
		c.PointerMove(end)
		c.PointerUp(end)
	case "modifier", "mod":
		if len(args) != 1 {
			return fmt.Errorf("modifier requires on|off")
		}
		held, err := parseSwitch(args[0])
		if err != nil {
			return err
		}
		c.SetModifier(held)
	case "dup", "duplicate":
		c.DuplicateSelected()
	case "delete", "del":
		c.RemoveSelected()
	case "clear":
		c.RemoveAll()
	default:
		return fmt.Errorf("unknown command %q", f[0])
	}
	return nil
}

func points(args []string, n int) ([]geom.Point, error) {
	if len(args) != 2*n {
		return nil, fmt.Errorf("expected %d coordinates, got %d", 2*n, len(args))
	}
	out := make([]geom.Point, n)
	for i := range out {
		x, err := strconv.ParseFloat(args[2*i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid x %q", args[2*i])
		}
		y, err := strconv.ParseFloat(args[2*i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid y %q", args[2*i+1])
		}
		out[i] = geom.Pt(x, y)
	}
	return out, nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1", "down":
		return true, nil
	case "off", "false", "0", "up":
		return false, nil
	}
	return false, fmt.Errorf("invalid switch %q", s)
}
