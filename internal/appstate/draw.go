package appstate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/huepad/internal/picker"
)

const checkerSize = 8

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	lightSrc, darkSrc := image.NewUniform(light), image.NewUniform(dark)
	for y := rect.Min.Y; y < rect.Max.Y; y += size {
		for x := rect.Min.X; x < rect.Max.X; x += size {
			src := lightSrc
			if ((x-rect.Min.X)/size+(y-rect.Min.Y)/size)%2 == 1 {
				src = darkSrc
			}
			cell := image.Rect(x, y, x+size, y+size).Intersect(rect)
			draw.Draw(dst, cell, src, image.Point{}, draw.Src)
		}
	}
}

// drawBackdrop paints the cached checkerboard under the drawing surface.
func (a *AppState) drawBackdrop(dst *image.RGBA) {
	r := a.drawing.Bounds()
	if a.backdrop == nil || a.backdrop.Bounds() != r {
		a.backdrop = image.NewRGBA(r)
		drawCheckerboard(a.backdrop, r, checkerSize, a.theme.CheckerLight, a.theme.CheckerDark)
	}
	draw.Draw(dst, r, a.backdrop, r.Min, draw.Src)
}

func drawRect(img draw.Image, rect image.Rectangle, col color.Color, thick int) {
	src := image.NewUniform(col)
	for _, edge := range []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thick),
		image.Rect(rect.Min.X, rect.Max.Y-thick, rect.Max.X, rect.Max.Y),
		image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+thick, rect.Max.Y),
		image.Rect(rect.Max.X-thick, rect.Min.Y, rect.Max.X, rect.Max.Y),
	} {
		draw.Draw(img, edge.Intersect(rect), src, image.Point{}, draw.Src)
	}
}

// Frame renders one complete window image into dst: background, backdrop,
// any scheduled surface frames, the widgets, the status line and the
// message overlay.
func (a *AppState) Frame(dst *image.RGBA) {
	b := dst.Bounds()
	draw.Draw(dst, b, image.NewUniform(a.theme.Background), image.Point{}, draw.Src)
	a.drawBackdrop(dst)
	a.queue.RunPending()
	a.router.Composite(dst)
	drawRect(dst, a.drawing.Bounds().Inset(-1), a.theme.Foreground, 1)
	a.drawStatus(dst)
	if msg := a.Message(); msg != "" {
		a.drawMessage(dst, msg)
	}
}

// StatusText is the line shown at the bottom of the window.
func (a *AppState) StatusText() string {
	c := a.picker.Color()
	parts := []string{c.String(), c.Hex(), fmt.Sprintf("width %g", a.lineWidth)}
	if a.rainbow {
		parts = append(parts, "rainbow")
	}
	if s := a.picker.State(); s != picker.Idle {
		parts = append(parts, s.String())
	}
	parts = append(parts, "P picker  C copy  I image  X clear  Q quit")
	return strings.Join(parts, "   ")
}

func (a *AppState) drawStatus(dst *image.RGBA) {
	b := dst.Bounds()
	bar := image.Rect(b.Min.X, b.Max.Y-statusHeight, b.Max.X, b.Max.Y)
	draw.Draw(dst, bar, image.NewUniform(a.theme.StatusBackground), image.Point{}, draw.Src)

	swatch := image.Rect(bar.Min.X+4, bar.Min.Y+4, bar.Min.X+4+statusHeight-8, bar.Max.Y-4)
	draw.Draw(dst, swatch, image.NewUniform(a.picker.Color()), image.Point{}, draw.Src)
	drawRect(dst, swatch, a.theme.Foreground, 1)

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(a.theme.Foreground), Face: basicfont.Face7x13,
		Dot: fixed.P(swatch.Max.X+6, bar.Max.Y-6)}
	d.DrawString(a.StatusText())
}

func (a *AppState) drawMessage(dst *image.RGBA, msg string) {
	face := messageFace
	b := dst.Bounds()
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(a.theme.MessageText), Face: face}
	wmsg := d.MeasureString(msg).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()
	px := b.Min.X + (b.Dx()-wmsg)/2
	py := b.Min.Y + (b.Dy()-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	draw.Draw(dst, rect, image.NewUniform(a.theme.MessageBackground), image.Point{}, draw.Over)
	drawRect(dst, rect, a.theme.MessageText, 2)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}
