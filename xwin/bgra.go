package xwin

import (
	"image"
	"image/color"
)

// BGRA is an RGBA image whose pixel bytes are stored in the order a
// 24/32-bit ZPixmap expects, so Pix can go straight into PutImage.
type BGRA struct {
	image.RGBA
}

func NewBGRA(r image.Rectangle) *BGRA {
	return &BGRA{*image.NewRGBA(r)}
}

func (img *BGRA) Set(x, y int, c color.Color) {
	img.SetRGBA(x, y, color.RGBAModel.Convert(c).(color.RGBA))
}

func (img *BGRA) SetRGBA(x, y int, c color.RGBA) {
	c.R, c.B = c.B, c.R
	img.RGBA.SetRGBA(x, y, c)
}

func (img *BGRA) At(x, y int) color.Color {
	c := img.RGBA.RGBAAt(x, y)
	c.R, c.B = c.B, c.R
	return c
}
