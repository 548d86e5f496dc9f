package floord

import (
	"bytes"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeTIFF = "image/tiff"
)

// A PageRasterizer renders the first page of a paginated document.
type PageRasterizer interface {
	RasterizeFirstPage(data []byte) (image.Image, error)
}

// DecodeRaster decodes a document or image into a grayscale raster.
//
// The content type selects the decoder. PDF documents are rendered with the
// rasterizer, which may be nil if PDFs are not supported. TIFF files may hold
// several pages, of which the first is used. Other types are sniffed and
// decoded as PNG, JPEG, GIF, BMP, or WebP.
//
// Color images are converted to luma, and transparent pixels are composited
// onto white paper.
func DecodeRaster(data []byte, contentType string, rasterizer PageRasterizer) (*RasterImage, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(ErrInputDecode, "empty input")
	}
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = http.DetectContentType(data)
	}

	var img image.Image
	var err error
	switch {
	case mediaType == ContentTypePDF || bytes.HasPrefix(data, []byte("%PDF")):
		if rasterizer == nil {
			return nil, errors.Wrap(ErrInputDecode, "no rasterizer configured for PDF input")
		}
		img, err = rasterizer.RasterizeFirstPage(data)
	case mediaType == ContentTypeTIFF || bytes.HasPrefix(data, []byte("II*\x00")) ||
		bytes.HasPrefix(data, []byte("MM\x00*")):
		img, err = tiff.Decode(bytes.NewReader(data))
	default:
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, errors.Wrap(ErrInputDecode, err.Error())
	}
	if img == nil || img.Bounds().Empty() {
		return nil, errors.Wrap(ErrInputDecode, "decoded image is empty")
	}
	return Grayscale(img), nil
}

// Grayscale converts an image into an 8-bit intensity raster.
func Grayscale(img image.Image) *RasterImage {
	if g, ok := img.(*image.Gray); ok {
		return GrayGrid(g)
	}
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Over)
	return GrayGrid(gray)
}
