package theme

import (
	"image/color"
)

// Theme defines the colours of the huepad window and picker.
type Theme struct {
	Name string

	// Window
	Background color.RGBA // Behind the drawing surface
	Foreground color.RGBA // Status line text

	StatusBackground color.RGBA

	// Drawing surface backdrop
	CheckerLight color.RGBA
	CheckerDark  color.RGBA

	// Picker
	PanelBackground color.RGBA
	MarkerFill      color.RGBA
	MarkerBorder    color.RGBA

	// Overlay message box
	MessageBackground color.RGBA
	MessageText       color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:              "Default",
		Background:        color.RGBA{220, 220, 220, 255},
		Foreground:        color.RGBA{0, 0, 0, 255},
		StatusBackground:  color.RGBA{200, 200, 200, 255},
		CheckerLight:      color.RGBA{255, 255, 255, 255},
		CheckerDark:       color.RGBA{235, 235, 235, 255},
		PanelBackground:   color.RGBA{240, 240, 240, 255},
		MarkerFill:        color.RGBA{},
		MarkerBorder:      color.RGBA{255, 255, 255, 255},
		MessageBackground: color.RGBA{230, 230, 230, 230}, // premultiplied #FFFFFFE6
		MessageText:       color.RGBA{0, 0, 0, 255},
	}
}
