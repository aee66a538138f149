package mailer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdoutMailer_Send(t *testing.T) {
	var buf bytes.Buffer
	m := NewStdoutWithWriter(&buf)

	err := m.Send(context.Background(), &Message{
		To:       []string{"a@b.com"},
		Subject:  "hello",
		TextBody: "body text",
		Attachments: []Attachment{
			{Filename: "f.txt", ContentType: "text/plain", Content: []byte("x")},
		},
	})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "To: a@b.com")
	assert.Contains(t, out, "Subject: hello")
	assert.Contains(t, out, "body text")
	assert.Contains(t, out, "f.txt")
	assert.Equal(t, "stdout", m.Name())
}
