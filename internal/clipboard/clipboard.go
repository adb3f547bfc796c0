// Package clipboard publishes the picked colour and the drawing to the
// system clipboard.
package clipboard

import "image"

// Writer is the part of the clipboard the window uses.
type Writer interface {
	WriteText(text string) error
	WriteImage(img image.Image) error
}

// System writes to the desktop clipboard.
type System struct{}

var _ Writer = System{}

func (System) WriteText(text string) error { return WriteText(text) }

func (System) WriteImage(img image.Image) error { return WriteImage(img) }
