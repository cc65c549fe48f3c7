// Package icon renders application icons into base64-encoded PNG.
package icon

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"sync"

	"github.com/leonhh/applist/internal/models"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultSize is the max dimension used when none is requested
const DefaultSize = 256

// maxPooledPixels keeps very large buffers out of the pool
const maxPooledPixels = 1024 * 1024

// Drawable is an icon that can paint itself into a pixel buffer of any size
type Drawable interface {
	// IntrinsicSize returns the natural size; non-positive values mean unknown
	IntrinsicSize() (width, height int)

	// Draw paints the icon scaled to fill dst.Bounds()
	Draw(dst draw.Image) error
}

type imageDrawable struct {
	img image.Image
}

// FromImage wraps a decoded image as a Drawable
func FromImage(img image.Image) Drawable {
	return &imageDrawable{img: img}
}

// Decode decodes PNG, JPEG, GIF or WebP data into a Drawable
func Decode(data []byte) (Drawable, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode icon: %w", err)
	}
	return FromImage(img), nil
}

func (d *imageDrawable) IntrinsicSize() (int, int) {
	b := d.img.Bounds()
	return b.Dx(), b.Dy()
}

func (d *imageDrawable) Draw(dst draw.Image) error {
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), d.img, d.img.Bounds(), xdraw.Over, nil)
	return nil
}

// ScaledSize fits width x height into a maxSize square keeping the aspect
// ratio: the larger side becomes maxSize, the other is truncated.
func ScaledSize(width, height, maxSize int) (int, int) {
	if width <= 0 {
		width = maxSize
	}
	if height <= 0 {
		height = maxSize
	}

	scale := float32(maxSize) / float32(max(width, height))
	return int(float32(width) * scale), int(float32(height) * scale)
}

// Render scales d to maxSize, encodes it as PNG and returns the base64 text
func Render(d Drawable, maxSize int) (string, error) {
	if d == nil {
		return "", &models.IntrospectError{Type: models.ErrIconRender, Err: errors.New("no icon")}
	}
	if maxSize <= 0 {
		maxSize = DefaultSize
	}

	iw, ih := d.IntrinsicSize()
	w, h := ScaledSize(iw, ih, maxSize)
	if w <= 0 || h <= 0 {
		return "", &models.IntrospectError{
			Type: models.ErrIconRender,
			Err:  fmt.Errorf("icon of %dx%d scales to an empty %dx%d bitmap", iw, ih, w, h),
		}
	}

	bitmap := acquire(w, h)
	defer release(bitmap)

	if err := d.Draw(bitmap); err != nil {
		return "", &models.IntrospectError{Type: models.ErrIconRender, Err: err}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, bitmap); err != nil {
		return "", &models.IntrospectError{
			Type: models.ErrIconRender,
			Err:  fmt.Errorf("failed to encode icon: %w", err),
		}
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

var pixelPool = sync.Pool{
	New: func() any { return new(image.RGBA) },
}

// acquire returns a cleared RGBA buffer of the given size
func acquire(width, height int) *image.RGBA {
	img := pixelPool.Get().(*image.RGBA)
	n := 4 * width * height
	if cap(img.Pix) < n {
		img.Pix = make([]uint8, n)
	} else {
		img.Pix = img.Pix[:n]
		clear(img.Pix)
	}
	img.Stride = 4 * width
	img.Rect = image.Rect(0, 0, width, height)
	return img
}

func release(img *image.RGBA) {
	if len(img.Pix) > 4*maxPooledPixels {
		return
	}
	pixelPool.Put(img)
}
