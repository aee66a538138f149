package mailer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// StdoutMailer prints messages to standard output instead of sending them.
// It is the development provider and always succeeds.
type StdoutMailer struct {
	writer io.Writer
}

func NewStdout() *StdoutMailer {
	return &StdoutMailer{writer: os.Stdout}
}

// NewStdoutWithWriter creates a StdoutMailer writing to w, useful for testing.
func NewStdoutWithWriter(w io.Writer) *StdoutMailer {
	return &StdoutMailer{writer: w}
}

func (m *StdoutMailer) Send(_ context.Context, msg *Message) error {
	var b strings.Builder

	b.WriteString("========================================\n")
	b.WriteString(fmt.Sprintf("To: %s\n", strings.Join(msg.To, ", ")))
	b.WriteString(fmt.Sprintf("Subject: %s\n", msg.Subject))

	body := msg.TextBody
	if body == "" {
		body = msg.HTMLBody
	}
	b.WriteString("Body:\n" + body + "\n")

	if len(msg.Attachments) > 0 {
		names := make([]string, 0, len(msg.Attachments))
		for _, att := range msg.Attachments {
			names = append(names, fmt.Sprintf("%s (%s, %d bytes)", att.Filename, att.ContentType, len(att.Content)))
		}
		b.WriteString(fmt.Sprintf("Attachments: %s\n", strings.Join(names, ", ")))
	}

	b.WriteString("========================================\n")

	fmt.Fprint(m.writer, b.String())
	return nil
}

func (m *StdoutMailer) Name() string {
	return "stdout"
}
