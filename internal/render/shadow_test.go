package render

import (
	"image"
	"image/color"
	"testing"
)

func TestDrawShadowDarkensOffsetArea(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 60, 60))
	r := image.Rect(10, 10, 30, 30)
	opts := ShadowOptions{Radius: 4, Offset: image.Pt(6, 6), Opacity: 0.5}
	DrawShadow(dst, r, opts)

	if got := ShadowBounds(r, opts); !got.Eq(image.Rect(12, 12, 40, 40)) {
		t.Fatalf("shadow bounds = %v", got)
	}
	// Inside the rectangle but past the offset the shadow is at full strength.
	if a := dst.RGBAAt(25, 25).A; a < 120 || a > 130 {
		t.Fatalf("shadow alpha = %d, want ~128", a)
	}
	// Nothing is painted up-left of the shifted area.
	if a := dst.RGBAAt(11, 11).A; a != 0 {
		t.Fatalf("unexpected alpha %d outside shadow", a)
	}
	// The blur fades towards the padded edge.
	if edge, core := dst.RGBAAt(38, 25).A, dst.RGBAAt(25, 25).A; edge >= core {
		t.Fatalf("edge alpha %d should be below core %d", edge, core)
	}
}

func TestDrawShadowZeroOpacityIsNoop(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	fill := color.RGBA{200, 100, 50, 255}
	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = fill.R, fill.G, fill.B, fill.A
	}
	DrawShadow(dst, image.Rect(2, 2, 8, 8), ShadowOptions{Radius: 3, Opacity: 0})
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if got := dst.RGBAAt(x, y); got != fill {
				t.Fatalf("pixel (%d,%d) changed to %+v", x, y, got)
			}
		}
	}
}

func TestBlurAlphaKeepsUniformInterior(t *testing.T) {
	src := image.NewAlpha(image.Rect(0, 0, 9, 9))
	for i := range src.Pix {
		src.Pix[i] = 200
	}
	out := blurAlpha(src, 2)
	if got := out.AlphaAt(4, 4).A; got != 200 {
		t.Fatalf("centre = %d, want 200", got)
	}
}

func TestDrawShadowFadesOverBackground(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 60, 60))
	white := color.RGBA{255, 255, 255, 255}
	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = white.R, white.G, white.B, white.A
	}
	DrawShadow(dst, image.Rect(10, 10, 30, 30), ShadowOptions{Radius: 4, Offset: image.Pt(6, 6), Opacity: 0.5})

	core := dst.RGBAAt(25, 25).R
	if core < 120 || core > 135 {
		t.Fatalf("core = %d, want half darkened white", core)
	}
	// Walking right from the core towards the padded edge only gets lighter.
	prev := core
	for x := 32; x < 40; x++ {
		got := dst.RGBAAt(x, 25).R
		if got < prev {
			t.Fatalf("x=%d darker (%d) than x=%d (%d)", x, got, x-1, prev)
		}
		prev = got
	}
	if prev == core {
		t.Fatalf("no falloff towards the edge: %d", prev)
	}
	if got := dst.RGBAAt(45, 25); got != white {
		t.Fatalf("pixel past the shadow = %v", got)
	}
}
