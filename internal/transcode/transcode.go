// Package transcode re-encodes uploaded images at a requested quality.
//
// JPEG targets have no alpha channel, so images carrying one are composited
// onto opaque white first. PNG targets are written losslessly and keep their
// colour mode.
package transcode

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Format is the target encoding.
type Format int

const (
	JPEG Format = iota
	PNG
)

func (f Format) String() string {
	switch f {
	case JPEG:
		return "JPEG"
	case PNG:
		return "PNG"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Operations reported in Error.Op.
const (
	OpDecode = "decode"
	OpEncode = "encode"
)

// Error is returned when the input cannot be decoded or the result cannot be encoded.
type Error struct {
	Op     string
	Format Format
	Err    error
}

func (e *Error) Error() string {
	if e.Op == OpEncode {
		return fmt.Sprintf("encode %s: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Transcode decodes data, normalises its colour mode for format and encodes it
// at quality. The returned slice never aliases data.
func Transcode(data []byte, quality int, format Format) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &Error{Op: OpDecode, Format: format, Err: err}
	}

	var buf bytes.Buffer
	if err := encode(&buf, normalize(img, format), quality, format); err != nil {
		return nil, &Error{Op: OpEncode, Format: format, Err: err}
	}
	return buf.Bytes(), nil
}

func encode(w io.Writer, img image.Image, quality int, format Format) error {
	switch format {
	case JPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	case PNG:
		// Lossless: quality has no effect here.
		return imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
	default:
		return fmt.Errorf("unsupported target format %s", format)
	}
}

// normalize prepares img for the target encoder. Only JPEG needs work.
func normalize(img image.Image, format Format) image.Image {
	if format != JPEG {
		return img
	}
	switch {
	case hasAlpha(img):
		return flatten(img)
	case !isRGB(img):
		return imaging.Clone(img)
	default:
		return img
	}
}

// flatten composites img over an opaque white canvas of the same size.
func flatten(img image.Image) *image.NRGBA {
	b := img.Bounds()
	canvas := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)
}

// hasAlpha reports whether the colour model of img carries transparency.
func hasAlpha(img image.Image) bool {
	switch m := img.(type) {
	case *image.NRGBA, *image.NRGBA64, *image.NYCbCrA, *image.Alpha, *image.Alpha16:
		return true
	case *image.RGBA:
		// The PNG decoder returns *image.RGBA for truecolour images without
		// an alpha channel, so only count it when some pixel is see-through.
		return !m.Opaque()
	case *image.RGBA64:
		return !m.Opaque()
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	default:
		if o, ok := img.(interface{ Opaque() bool }); ok {
			return !o.Opaque()
		}
		return false
	}
}

// isRGB reports whether img is already in a mode the JPEG encoder takes as is.
func isRGB(img image.Image) bool {
	switch img.(type) {
	case *image.YCbCr, *image.RGBA:
		return true
	default:
		return false
	}
}
