package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/fileflow-dev/fileflow/internal/logger"
)

// previewLimit caps how many characters of submitted code are embedded in
// the delivery email body.
const previewLimit = 500

// previewPolicy strips all markup from user content before it is embedded
// in the email body.
var previewPolicy = bluemonday.StrictPolicy()

const filesBodyHTML = `<div style="font-family: 'Segoe UI', Arial, sans-serif; max-width: 640px; margin: 0 auto; padding: 24px;">
  <h2 style="color: #111827; text-align: center;">Your Files Have Been Processed</h2>
  <p style="color: #374151;">Hello,</p>
  <p style="color: #374151; line-height: 1.6;">We have received and processed your uploaded files. Please find them attached to this email.</p>
  <div style="background-color: #f9fafb; padding: 18px; border-radius: 8px; margin: 24px 0;">
    <h3 style="margin: 0 0 10px 0; color: #1f2937;">Files Included</h3>
    <ul style="margin: 0; padding-left: 20px; color: #374151;">
{{- range .Filenames}}
      <li style="margin: 6px 0;">{{.}}</li>
{{- end}}
    </ul>
  </div>
{{- if .Compressed}}
  <p style="color: #6b7280; font-size: 14px;">Files were compressed before sending to reduce transfer size.</p>
{{- end}}
  <p style="color: #6b7280; font-size: 14px; margin-top: 32px;">Best regards,<br><strong style="color: #111827;">FileFlow</strong></p>
</div>`

const textBodyHTML = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2563eb;">Your {{.ContentType}} from FileFlow</h2>
  <p>Hello!</p>
  <p>You've successfully shared your content through FileFlow. It is attached as a formatted file.</p>
  <div style="background-color: #f8fafc; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="margin-top: 0; color: #374151;">File Details:</h3>
    <ul style="margin: 0; padding-left: 20px;">
      <li style="margin: 5px 0;"><strong>Filename:</strong> {{.Filename}}</li>
      <li style="margin: 5px 0;"><strong>Type:</strong> {{.KindLabel}}</li>
      <li style="margin: 5px 0;"><strong>Size:</strong> {{.SizeChars}} characters</li>
    </ul>
  </div>
{{- if .Preview}}
  <div style="background-color: #1f2937; color: #f9fafb; padding: 15px; border-radius: 8px; margin: 20px 0;">
    <h4 style="margin-top: 0; color: #10b981;">Preview:</h4>
    <pre style="margin: 0; font-family: 'Courier New', monospace; font-size: 13px; white-space: pre-wrap;">{{.Preview}}</pre>
  </div>
{{- end}}
  <p style="color: #6b7280; font-size: 14px;"><strong>Privacy Note:</strong> Your content was not stored on our servers and was sent directly to your email.</p>
  <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 30px 0;">
  <p style="color: #9ca3af; font-size: 12px; text-align: center;">This email was sent by FileFlow - Secure File Sharing</p>
</div>`

var (
	filesBodyTmpl = template.Must(template.New("files").Parse(filesBodyHTML))
	textBodyTmpl  = template.Must(template.New("text").Parse(textBodyHTML))
)

type filesBodyData struct {
	Filenames  []string
	Compressed bool
}

type textBodyData struct {
	ContentType string
	Filename    string
	KindLabel   string
	SizeChars   int
	Preview     template.HTML
}

// FilesBody renders the HTML body for a file delivery email.
func FilesBody(filenames []string, compressed bool) string {
	var buf bytes.Buffer
	data := filesBodyData{Filenames: filenames, Compressed: compressed}
	if err := filesBodyTmpl.Execute(&buf, data); err != nil {
		logger.Log.Error("failed to render files email body", "error", err)
		return fmt.Sprintf("Your files have been processed: %s", strings.Join(filenames, ", "))
	}
	return buf.String()
}

// TextBody renders the HTML body for a text or code delivery email. For code
// submissions a preview of the content is embedded; the content is stripped
// of any markup first and escaped again by the template engine.
func TextBody(filename, kindLabel, content string, isCode bool) string {
	contentType := "Text"
	var preview template.HTML
	if isCode {
		contentType = "Code"
		// Sanitize strips markup and escapes what remains, so the result is
		// safe to embed without a second round of template escaping.
		preview = template.HTML(previewPolicy.Sanitize(truncateRunes(content, previewLimit)))
	}

	var buf bytes.Buffer
	data := textBodyData{
		ContentType: contentType,
		Filename:    filename,
		KindLabel:   kindLabel,
		SizeChars:   len(content),
		Preview:     preview,
	}
	if err := textBodyTmpl.Execute(&buf, data); err != nil {
		logger.Log.Error("failed to render text email body", "error", err)
		return fmt.Sprintf("Your %s is attached as %s.", strings.ToLower(contentType), filename)
	}
	return buf.String()
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
