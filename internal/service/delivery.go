// Package service assembles transfer requests from user-entered state and
// hands them to the delivery gateway. Assembly re-checks every precondition
// the HTTP layer already checked; a single validation point is never
// trusted.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fileflow-dev/fileflow/internal/compression"
	"github.com/fileflow-dev/fileflow/internal/domain"
	"github.com/fileflow-dev/fileflow/internal/errors"
	"github.com/fileflow-dev/fileflow/internal/logger"
	"github.com/fileflow-dev/fileflow/internal/mailer"
)

var (
	emailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fileflow_emails_sent_total",
			Help: "Total number of delivery emails sent",
		},
		[]string{"kind"},
	)

	emailsFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fileflow_emails_failed_total",
			Help: "Total number of delivery emails that failed to send",
		},
		[]string{"kind"},
	)
)

// SourceMetadata is sender provenance attached to a submission. It is used
// for diagnostics only and never persisted.
type SourceMetadata struct {
	IP        string
	UserAgent string
	Locale    string
	Referrer  string
	Timestamp time.Time
}

// FileTransfer is a file submission ready for assembly.
type FileTransfer struct {
	Recipients  []string
	Attachments []domain.Attachment
	Compressed  bool
	Source      SourceMetadata
}

// TextTransfer is a text or code submission ready for assembly.
type TextTransfer struct {
	Recipients []string
	Content    string
	Kind       domain.ContentKind
	Filename   string
	Compressed bool
	Source     SourceMetadata
}

// Delivery builds outbound messages and dispatches them through the
// configured mailer. Each submission results in at most one send.
type Delivery struct {
	mailer mailer.Mailer
}

func NewDelivery(m mailer.Mailer) *Delivery {
	return &Delivery{mailer: m}
}

// SendFiles compresses (when requested) and emails the uploaded files.
// It returns the user-facing confirmation message.
func (d *Delivery) SendFiles(ctx context.Context, req FileTransfer) (string, error) {
	recipients, err := validRecipients(req.Recipients)
	if err != nil {
		return "", err
	}
	if len(req.Attachments) == 0 {
		return "", &errors.ErrorWithStatusCode{Message: "No files provided", StatusCode: 400}
	}

	// Final size check even though intake already ran one.
	for _, att := range req.Attachments {
		if !domain.WithinSizeLimit(att.OriginalSize) {
			return "", &errors.ErrorWithStatusCode{
				Message:    fmt.Sprintf("%s exceeds the %s limit", att.Filename, compression.FormatSize(domain.MaxPayloadBytes)),
				StatusCode: 400,
			}
		}
	}

	attachments := req.Attachments
	if req.Compressed {
		// One file at a time, in user-selection order. Each transformation
		// is independent, so this fold can later be parallelized behind the
		// same interface.
		compressed := make([]domain.Attachment, len(attachments))
		for i, att := range attachments {
			compressed[i] = compression.Compress(att)
			logger.Log.Debug("attachment compressed",
				"filename", compressed[i].Filename,
				"original_size", compressed[i].OriginalSize,
				"compressed_size", compressed[i].CompressedSize,
				"ratio_pct", compression.Ratio(compressed[i].OriginalSize, compressed[i].CompressedSize))
		}
		attachments = compressed
	}

	filenames := make([]string, len(attachments))
	outbound := make([]mailer.Attachment, len(attachments))
	for i, att := range attachments {
		filenames[i] = att.Filename
		outbound[i] = mailer.Attachment{
			Filename:    att.Filename,
			ContentType: att.MimeType,
			Content:     att.Data,
		}
	}

	msg := &mailer.Message{
		To:          recipients.Emails(),
		Subject:     fmt.Sprintf("FileFlow - Your uploaded files - %d file(s)", len(attachments)),
		HTMLBody:    mailer.FilesBody(filenames, req.Compressed),
		Attachments: outbound,
	}

	if err := d.dispatch(ctx, "files", msg, req.Source); err != nil {
		return "", err
	}

	return fmt.Sprintf("Successfully sent %d file(s) to %s",
		len(attachments), strings.Join(recipients.Emails(), ", ")), nil
}

// SendText emails pasted text or code as an attachment. It returns the
// user-facing confirmation message.
func (d *Delivery) SendText(ctx context.Context, req TextTransfer) (string, error) {
	recipients, err := validRecipients(req.Recipients)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(req.Content) == "" {
		return "", &errors.ErrorWithStatusCode{Message: "Content is required", StatusCode: 400}
	}
	if !domain.WithinSizeLimit(int64(len(req.Content))) {
		return "", &errors.ErrorWithStatusCode{
			Message:    fmt.Sprintf("Content exceeds the %s limit", compression.FormatSize(domain.MaxPayloadBytes)),
			StatusCode: 400,
		}
	}

	filename := domain.BuildFilename(req.Kind, req.Filename)
	isCode := !req.Kind.IsPlainText()

	var att domain.Attachment
	if req.Compressed {
		att = compression.CompressText(filename, req.Content)
	} else {
		att = domain.Attachment{
			Filename:     filename,
			MimeType:     "text/plain",
			Data:         []byte(req.Content),
			OriginalSize: int64(len(req.Content)),
		}
	}

	contentType := "Text"
	if isCode {
		contentType = "Code"
	}

	msg := &mailer.Message{
		To:       recipients.Emails(),
		Subject:  fmt.Sprintf("Your %s from FileFlow - %s", contentType, filename),
		HTMLBody: mailer.TextBody(filename, req.Kind.Label(), req.Content, isCode),
		Attachments: []mailer.Attachment{{
			Filename:    att.Filename,
			ContentType: att.MimeType,
			Content:     att.Data,
		}},
	}

	if err := d.dispatch(ctx, "text", msg, req.Source); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s sent successfully to %s", contentType, strings.Join(recipients.Emails(), ", ")), nil
}

// dispatch performs the single delivery attempt and maps mailer failures to
// the transport error surfaced to the user. There is no automatic retry.
func (d *Delivery) dispatch(ctx context.Context, kind string, msg *mailer.Message, src SourceMetadata) error {
	if err := d.mailer.Send(ctx, msg); err != nil {
		emailsFailedTotal.WithLabelValues(kind).Inc()
		logger.Log.Error("delivery failed",
			"provider", d.mailer.Name(),
			"kind", kind,
			"recipients", len(msg.To),
			"source_ip", src.IP,
			"error", err)
		return &errors.ErrorWithStatusCode{
			Message:    "Failed to send email. Please try again.",
			StatusCode: 502,
		}
	}

	emailsSentTotal.WithLabelValues(kind).Inc()
	logger.Log.Info("delivery sent",
		"provider", d.mailer.Name(),
		"kind", kind,
		"recipients", len(msg.To),
		"attachments", len(msg.Attachments),
		"source_ip", src.IP)
	return nil
}

// validRecipients rebuilds the recipient set server-side; entries that fail
// validation reject the submission, duplicates collapse silently.
func validRecipients(values []string) (*domain.RecipientSet, error) {
	recipients, err := domain.FromStrings(values)
	if err != nil {
		return nil, &errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: 400}
	}
	if recipients.Len() == 0 {
		return nil, &errors.ErrorWithStatusCode{Message: "At least one recipient is required", StatusCode: 400}
	}
	return recipients, nil
}
