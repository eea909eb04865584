package seo

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"io"
)

var (
	cardBackground = color.RGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff}
	cardAccent     = color.RGBA{R: 0x64, G: 0xff, B: 0xda, A: 0xff}
)

const (
	cardPortrait = 800
	cardRing     = 8
)

// DecodeProfile reads a PNG or JPEG profile picture.
func DecodeProfile(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding profile image: %w", err)
	}
	return img, nil
}

// SocialCard renders the square share image: the profile picture cropped to
// a circle with an accent ring, centered on the dark background. Without a
// profile picture the circle is filled with the accent color.
func SocialCard(profile image.Image) ([]byte, error) {
	size := SocialCardSize
	canvas := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: cardBackground}, image.Point{}, draw.Src)

	center := size / 2
	outer := cardPortrait / 2
	inner := outer - cardRing

	var scaled func(x, y int) color.Color
	if profile != nil {
		b := profile.Bounds()
		scaled = func(x, y int) color.Color {
			// Nearest-neighbour sample of the portrait square.
			sx := b.Min.X + (x-(center-inner))*b.Dx()/(2*inner)
			sy := b.Min.Y + (y-(center-inner))*b.Dy()/(2*inner)
			return profile.At(sx, sy)
		}
	}

	for y := center - outer; y < center+outer; y++ {
		for x := center - outer; x < center+outer; x++ {
			dx, dy := x-center, y-center
			d2 := dx*dx + dy*dy
			switch {
			case d2 > outer*outer:
				continue
			case d2 > inner*inner || scaled == nil:
				canvas.Set(x, y, cardAccent)
			default:
				canvas.Set(x, y, scaled(x, y))
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encoding social card: %w", err)
	}
	return buf.Bytes(), nil
}
