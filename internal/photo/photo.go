//
// Package photo turns an uploaded student photo, in whatever
// raster encoding it arrived in, into a small square RGB jpeg
// suitable for embedding in a document.
//
package photo

import (
	"bytes"
	"image"
	"image/color"
	"net/http"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// thumbnail edge in pixels when none is given
const DefaultSize = 150

const jpegQuality = 90

//
// decodes a copy of blob, crops it to a centred size x size
// square, flattens any transparency onto white and re-encodes
// it as a three channel jpeg.
//
func Normalize(blob []byte, size int) ([]byte, error) {

	if len(blob) == 0 {
		return nil, errors.New("empty photo")
	}
	if size <= 0 {
		size = DefaultSize
	}

	img, err := decode(blob)
	if err != nil {
		return nil, err
	}

	thumb := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)
	flat := imaging.Overlay(imaging.New(size, size, color.White), thumb, image.Pt(0, 0), 1.0)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, flat, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, errors.Wrap(err, "cannot encode photo as jpeg")
	}

	return buf.Bytes(), nil
}

//
// sniffs the content type first; webp goes to its own
// decoder, everything else through the standard registry
//
func decode(blob []byte) (image.Image, error) {

	head := blob
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	var (
		img image.Image
		err error
	)
	if strings.Contains(ct, "webp") {
		img, err = webp.Decode(bytes.NewReader(blob))
	} else {
		img, err = imaging.Decode(bytes.NewReader(blob), imaging.AutoOrientation(true))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cannot decode photo (%s)", ct)
	}

	return img, nil
}
