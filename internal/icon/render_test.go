package icon

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"testing"
)

type fakeDrawable struct {
	width, height int
	err           error
	draws         int
}

func (f *fakeDrawable) IntrinsicSize() (int, int) { return f.width, f.height }

func (f *fakeDrawable) Draw(dst draw.Image) error {
	f.draws++
	if f.err != nil {
		return f.err
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.RGBA{R: 255, A: 255}), image.Point{}, draw.Src)
	return nil
}

func decodeRendered(t *testing.T, encoded string) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("Output is not base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	return img
}

func TestScaledSize(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{512, 256, 128, 128, 64},
		{256, 512, 128, 64, 128},
		{48, 48, 256, 256, 256},
		{0, 0, 96, 96, 96},
		{-1, 100, 50, 25, 50},
		{300, 200, 100, 100, 66},
	}

	for _, tt := range tests {
		gotW, gotH := ScaledSize(tt.w, tt.h, tt.max)
		if gotW != tt.wantW || gotH != tt.wantH {
			t.Errorf("ScaledSize(%d, %d, %d) = %dx%d, want %dx%d", tt.w, tt.h, tt.max, gotW, gotH, tt.wantW, tt.wantH)
		}
	}
}

func TestRenderPreservesAspectRatio(t *testing.T) {
	d := &fakeDrawable{width: 512, height: 256}

	encoded, err := Render(d, 128)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.ContainsAny(encoded, "\r\n") {
		t.Errorf("Base64 output must not be wrapped")
	}

	img := decodeRendered(t, encoded)
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 64 {
		t.Errorf("Expected 128x64, got %dx%d", b.Dx(), b.Dy())
	}

	r, _, _, a := img.At(10, 10).RGBA()
	if r != 0xffff || a != 0xffff {
		t.Errorf("Expected opaque red pixel, got r=%x a=%x", r, a)
	}
}

func TestRenderDefaultSize(t *testing.T) {
	encoded, err := Render(&fakeDrawable{}, 0)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if b := decodeRendered(t, encoded).Bounds(); b.Dx() != DefaultSize || b.Dy() != DefaultSize {
		t.Errorf("Expected %dx%d, got %dx%d", DefaultSize, DefaultSize, b.Dx(), b.Dy())
	}
}

func TestRenderDrawFailure(t *testing.T) {
	d := &fakeDrawable{width: 64, height: 64, err: errors.New("broken drawable")}

	if _, err := Render(d, 32); err == nil {
		t.Fatalf("Expected error from failing drawable")
	}

	// the pixel buffer goes back to the pool and comes out cleared
	buf := acquire(32, 32)
	defer release(buf)
	for _, p := range buf.Pix {
		if p != 0 {
			t.Fatalf("Expected cleared pixel buffer")
		}
	}
}

func TestRenderDegenerateIcon(t *testing.T) {
	// 1000x1 at 100 truncates the short side to zero
	if _, err := Render(&fakeDrawable{width: 1000, height: 1}, 100); err == nil {
		t.Errorf("Expected error for empty bitmap")
	}
	if _, err := Render(nil, 100); err == nil {
		t.Errorf("Expected error for nil drawable")
	}
}

func TestDecodeAndRenderImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 20))
	draw.Draw(src, src.Bounds(), image.NewUniform(color.RGBA{B: 255, A: 255}), image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("Failed to encode source: %v", err)
	}

	d, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if w, h := d.IntrinsicSize(); w != 40 || h != 20 {
		t.Errorf("Expected intrinsic 40x20, got %dx%d", w, h)
	}

	encoded, err := Render(d, 80)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	img := decodeRendered(t, encoded)
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 40 {
		t.Errorf("Expected 80x40, got %dx%d", b.Dx(), b.Dy())
	}

	_, _, b, _ := img.At(40, 20).RGBA()
	if b < 0xf000 {
		t.Errorf("Expected blue center pixel, got b=%x", b)
	}

	if _, err := Decode([]byte("not an image")); err == nil {
		t.Errorf("Expected decode error")
	}
}
