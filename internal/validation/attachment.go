package validation

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"

	"github.com/fileflow-dev/fileflow/internal/domain"
)

// CollectAttachments reads the uploaded files into Attachment records,
// detecting each file's MIME type and enforcing the per-item size cap.
// An oversized file rejects the whole intake with a message naming the file;
// nothing is silently dropped.
func CollectAttachments(fileHeaders []*multipart.FileHeader) ([]domain.Attachment, error) {
	if len(fileHeaders) == 0 {
		return nil, nil
	}

	var attachments []domain.Attachment

	for _, fileHeader := range fileHeaders {
		if !domain.WithinSizeLimit(fileHeader.Size) {
			return nil, fmt.Errorf("%w: %s (%.1f MB) exceeds the %.0f MB limit",
				ErrPayloadTooLarge, fileHeader.Filename,
				FormatSizeMB(fileHeader.Size), FormatSizeMB(domain.MaxPayloadBytes))
		}

		mimeType, err := DetectMimeType(fileHeader)
		if err != nil {
			return nil, err
		}

		file, err := fileHeader.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}

		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded file %s: %w", fileHeader.Filename, err)
		}

		attachments = append(attachments, domain.Attachment{
			Filename:     fileHeader.Filename,
			MimeType:     mimeType,
			Data:         data,
			OriginalSize: int64(len(data)),
		})
	}

	return attachments, nil
}

// DetectMimeType resolves a file's MIME type from the part's Content-Type
// header, falling back to extension lookup for missing or generic values.
func DetectMimeType(fileHeader *multipart.FileHeader) (string, error) {
	mimeType := fileHeader.Header.Get("Content-Type")

	// If no Content-Type or it's generic, detect from extension
	if mimeType == "" || mimeType == "application/octet-stream" {
		ext := filepath.Ext(fileHeader.Filename)
		if detectedType := mime.TypeByExtension(ext); detectedType != "" {
			mimeType = detectedType
		}
	}

	if mimeType == "" {
		return "", fmt.Errorf("%w: could not detect MIME type for file %s", ErrUnknownMimeType, fileHeader.Filename)
	}

	return mimeType, nil
}
