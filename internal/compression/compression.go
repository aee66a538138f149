// Package compression reduces attachment payloads before delivery while
// preserving usability of the result. Strategy selection is a tagged
// dispatch over the attachment kind: images are re-encoded, PDFs are
// gzipped in place, everything else gets generic gzip. Any internal
// failure degrades to passing the original bytes through unmodified;
// compression never aborts a submission.
package compression

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/fileflow-dev/fileflow/internal/domain"
	"github.com/fileflow-dev/fileflow/internal/logger"
)

const gzipMimeType = "application/gzip"

type strategy int

const (
	strategyImage strategy = iota
	strategyPDF
	strategyGeneric
)

func strategyFor(mimeType string) strategy {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return strategyImage
	case mimeType == "application/pdf":
		return strategyPDF
	default:
		return strategyGeneric
	}
}

// Compress transforms att into its compressed form and returns a new
// Attachment record; the input is not mutated. The returned record always
// has CompressedSize set, even when the engine degraded to pass-through.
func Compress(att domain.Attachment) domain.Attachment {
	switch strategyFor(att.MimeType) {
	case strategyImage:
		return compressImage(att)
	case strategyPDF:
		return compressPDF(att)
	default:
		return compressGeneric(att)
	}
}

// CompressText gzips pasted text content. The attachment keeps the derived
// filename with a .gz suffix appended.
func CompressText(filename, content string) domain.Attachment {
	att := domain.Attachment{
		Filename:     filename,
		MimeType:     "text/plain",
		Data:         []byte(content),
		OriginalSize: int64(len(content)),
	}
	return compressGeneric(att)
}

// compressPDF applies lossless gzip to the raw bytes but keeps the PDF MIME
// type and the original filename. No ratio target is enforced and there is
// no second compression pass.
func compressPDF(att domain.Attachment) domain.Attachment {
	compressed, err := gzipBytes(att.Data)
	if err != nil {
		logger.Log.Warn("pdf compression failed, passing through", "filename", att.Filename, "error", err)
		return passThrough(att)
	}
	return domain.Attachment{
		Filename:       att.Filename,
		MimeType:       att.MimeType,
		Data:           compressed,
		OriginalSize:   att.OriginalSize,
		CompressedSize: int64(len(compressed)),
	}
}

// compressGeneric applies lossless gzip and appends a .gz suffix to the
// filename. On compressor failure the bytes pass through with the MIME type
// unchanged.
func compressGeneric(att domain.Attachment) domain.Attachment {
	compressed, err := gzipBytes(att.Data)
	if err != nil {
		logger.Log.Warn("compression failed, passing through", "filename", att.Filename, "error", err)
		return passThrough(att)
	}
	return domain.Attachment{
		Filename:       att.Filename + ".gz",
		MimeType:       gzipMimeType,
		Data:           compressed,
		OriginalSize:   att.OriginalSize,
		CompressedSize: int64(len(compressed)),
	}
}

func passThrough(att domain.Attachment) domain.Attachment {
	out := att
	out.CompressedSize = int64(len(att.Data))
	return out
}

func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Ratio returns the size reduction as a rounded percentage for display.
// A zero original size yields 0 rather than dividing by zero.
func Ratio(originalSize, compressedSize int64) int {
	if originalSize == 0 {
		return 0
	}
	return int(math.Round(float64(originalSize-compressedSize) / float64(originalSize) * 100))
}

// FormatSize renders a byte count for user-facing messages, e.g. "1.5 MB".
func FormatSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(units) {
		i = len(units) - 1
	}
	value := float64(bytes) / math.Pow(1024, float64(i))
	return strconv.FormatFloat(math.Round(value*100)/100, 'f', -1, 64) + " " + units[i]
}
