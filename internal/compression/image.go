package compression

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"golang.org/x/image/draw"

	"github.com/fileflow-dev/fileflow/internal/domain"
	"github.com/fileflow-dev/fileflow/internal/logger"
)

// Bounding box for re-encoded images. Images are only ever scaled down to
// fit, never up.
const (
	maxImageWidth  = 1920
	maxImageHeight = 1080
)

// Size thresholds driving the JPEG quality tiers.
const (
	qualityCutoffLarge  = 5 * 1024 * 1024
	qualityCutoffMedium = 2 * 1024 * 1024
)

// compressImage decodes the raster, downscales it to fit the bounding box
// preserving aspect ratio, and re-encodes as JPEG. The quality tier depends
// on the original payload size. A decode failure is not an error: the
// attachment falls back to generic compression.
func compressImage(att domain.Attachment) domain.Attachment {
	img, format, err := image.Decode(bytes.NewReader(att.Data))
	if err != nil {
		logger.Log.Warn("image decode failed, falling back to generic compression",
			"filename", att.Filename, "error", err)
		return compressGeneric(att)
	}

	bounds := img.Bounds()
	targetW, targetH := fitWithin(bounds.Dx(), bounds.Dy(), maxImageWidth, maxImageHeight)
	if targetW < bounds.Dx() || targetH < bounds.Dy() {
		scaled := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Src, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: qualityFor(att.OriginalSize)}); err != nil {
		logger.Log.Warn("jpeg encode failed, passing through",
			"filename", att.Filename, "format", format, "error", err)
		return passThrough(att)
	}

	return domain.Attachment{
		Filename:       replaceExtension(att.Filename, ".jpg"),
		MimeType:       "image/jpeg",
		Data:           buf.Bytes(),
		OriginalSize:   att.OriginalSize,
		CompressedSize: int64(buf.Len()),
	}
}

// qualityFor maps the original payload size to a JPEG quality setting:
// larger inputs tolerate more aggressive lossy compression.
func qualityFor(originalSize int64) int {
	switch {
	case originalSize > qualityCutoffLarge:
		return 60
	case originalSize > qualityCutoffMedium:
		return 70
	default:
		return 80
	}
}

// fitWithin computes the dimensions scaled down to fit maxW x maxH while
// preserving aspect ratio. Images already inside the box keep their size.
func fitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	ratio := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	scaledW := int(float64(w) * ratio)
	scaledH := int(float64(h) * ratio)
	if scaledW < 1 {
		scaledW = 1
	}
	if scaledH < 1 {
		scaledH = 1
	}
	return scaledW, scaledH
}

// replaceExtension swaps the filename extension for the output codec's.
func replaceExtension(filename, ext string) string {
	if idx := strings.LastIndex(filename, "."); idx > 0 {
		filename = filename[:idx]
	}
	return filename + ext
}
