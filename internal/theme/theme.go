package theme

import (
	"image/color"
)

// Theme defines the color palette for the editor window.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background behind the panels
	Foreground color.RGBA // Main text color

	// Toolbar & category tabs
	ToolbarBackground color.RGBA
	TabBackground     color.RGBA // Inactive tab background
	TabActive         color.RGBA
	TabHover          color.RGBA
	TabText           color.RGBA
	TabTextActive     color.RGBA

	// Toolbar buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	// Sticker palette
	PaletteBackground color.RGBA
	PaletteCell       color.RGBA
	PaletteCellHover  color.RGBA
	SearchBackground  color.RGBA

	// Canvas
	CanvasBackground color.RGBA // Area around the composition
	CheckerLight     color.RGBA // Empty canvas pattern
	CheckerDark      color.RGBA
	Selection        color.RGBA // Selection outline
	Handle           color.RGBA // Resize handle fill

	// Notices
	SnackbarBackground color.RGBA
	SnackbarText       color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{236, 240, 241, 255},
		Foreground:            color.RGBA{44, 62, 80, 255},
		ToolbarBackground:     color.RGBA{220, 224, 226, 255},
		TabBackground:         color.RGBA{220, 224, 226, 255},
		TabActive:             color.RGBA{52, 152, 219, 255},
		TabHover:              color.RGBA{204, 212, 216, 255},
		TabText:               color.RGBA{44, 62, 80, 255},
		TabTextActive:         color.RGBA{255, 255, 255, 255},
		ButtonBackground:      color.RGBA{52, 152, 219, 255},
		ButtonBackgroundHover: color.RGBA{41, 128, 185, 255},
		ButtonBackgroundPress: color.RGBA{31, 97, 141, 255},
		ButtonText:            color.RGBA{255, 255, 255, 255},
		ButtonBorder:          color.RGBA{31, 97, 141, 255},
		PaletteBackground:     color.RGBA{248, 249, 250, 255},
		PaletteCell:           color.RGBA{255, 255, 255, 255},
		PaletteCellHover:      color.RGBA{214, 234, 248, 255},
		SearchBackground:      color.RGBA{255, 255, 255, 255},
		CanvasBackground:      color.RGBA{189, 195, 199, 255},
		CheckerLight:          color.RGBA{220, 220, 220, 255},
		CheckerDark:           color.RGBA{192, 192, 192, 255},
		Selection:             color.RGBA{52, 152, 219, 255},
		Handle:                color.RGBA{255, 255, 255, 255},
		SnackbarBackground:    color.RGBA{51, 51, 51, 230},
		SnackbarText:          color.RGBA{255, 255, 255, 255},
	}
}
