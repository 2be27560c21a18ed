package xwin

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Banner renders a static line of text centered in a window,
// typically from the window's expose hook.
type Banner struct {
	face   font.Face
	text   string
	fg, bg color.RGBA
}

func NewBanner(text string) (*Banner, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(f, &truetype.Options{Size: 18, DPI: 72})
	return &Banner{
		face: face,
		text: text,
		fg:   color.RGBA{0x30, 0x30, 0x30, 0xff},
		bg:   color.RGBA{0xef, 0xef, 0xea, 0xff},
	}, nil
}

// Draw paints the whole window: background fill plus centered text.
func (b *Banner) Draw(w *Window) error {
	r := w.Size()
	if r.Empty() {
		return nil
	}
	img := NewBGRA(r)
	draw.Draw(img, r, image.NewUniform(b.bg), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(b.fg),
		Face: b.face,
	}
	adv := d.MeasureString(b.text)
	m := b.face.Metrics()
	d.Dot = fixed.P((r.Dx()-adv.Ceil())/2, (r.Dy()+m.Ascent.Ceil())/2)
	d.DrawString(b.text)

	return w.PutImage(img)
}

// PutImage uploads img to the window in row strips small enough to
// stay under the protocol's maximum request length.
func (w *Window) PutImage(img *BGRA) error {
	r := img.Bounds()
	stride := r.Dx() * 4
	if stride == 0 {
		return nil
	}
	rowsPer := max(1, (1<<16)/stride)
	for y := r.Min.Y; y < r.Max.Y; y += rowsPer {
		h := min(rowsPer, r.Max.Y-y)
		data := img.Pix[(y-r.Min.Y)*stride : (y-r.Min.Y+h)*stride]
		err := xproto.PutImageChecked(
			w.tk.Conn,
			xproto.ImageFormatZPixmap,
			xproto.Drawable(w.Win),
			w.GCtx,
			uint16(r.Dx()), uint16(h),
			int16(r.Min.X), int16(y),
			0, // left pad
			w.tk.Screen.RootDepth,
			data).Check()
		if err != nil {
			return err
		}
	}
	return nil
}
