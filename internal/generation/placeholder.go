package generation

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	placeholderWidth  = 768
	placeholderHeight = 512
	placeholderBorder = 4
)

var (
	placeholderBackground = color.RGBA{R: 0x2b, G: 0x2d, B: 0x42, A: 0xff}
	placeholderBorderCol  = color.RGBA{R: 0x8d, G: 0x99, B: 0xae, A: 0xff}
	placeholderTextCol    = color.RGBA{R: 0xed, G: 0xf2, B: 0xf4, A: 0xff}
)

// PlaceholderPNG renders a deterministic stand-in image carrying a truncated
// copy of the prompt, so concepts always have both image slots filled even
// when the image server is down or disabled.
func PlaceholderPNG(prompt string) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, placeholderWidth, placeholderHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(placeholderBorderCol), image.Point{}, draw.Src)

	inner := image.Rect(placeholderBorder, placeholderBorder,
		placeholderWidth-placeholderBorder, placeholderHeight-placeholderBorder)
	draw.Draw(img, inner, image.NewUniform(placeholderBackground), image.Point{}, draw.Src)

	drawPromptText(img, prompt)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawPromptText wraps the prompt across the canvas with the fixed-width
// bitmap font, truncating what does not fit.
func drawPromptText(img *image.RGBA, prompt string) {
	face := basicfont.Face7x13
	const (
		marginX    = 24
		marginY    = 40
		lineHeight = 18
	)
	maxCols := (placeholderWidth - 2*marginX) / face.Advance
	maxLines := (placeholderHeight - 2*marginY) / lineHeight

	runes := []rune(prompt)
	for line := 0; line < maxLines && len(runes) > 0; line++ {
		n := maxCols
		if n > len(runes) {
			n = len(runes)
		}
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(placeholderTextCol),
			Face: face,
			Dot: fixed.Point26_6{
				X: fixed.I(marginX),
				Y: fixed.I(marginY + line*lineHeight),
			},
		}
		d.DrawString(string(runes[:n]))
		runes = runes[n:]
	}
}
