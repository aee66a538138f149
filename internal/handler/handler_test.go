package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fileflow-dev/fileflow/internal/api"
	"github.com/fileflow-dev/fileflow/internal/mailer"
	"github.com/fileflow-dev/fileflow/internal/service"
)

type fakeMailer struct {
	messages []*mailer.Message
	err      error
}

func (f *fakeMailer) Send(_ context.Context, msg *mailer.Message) error {
	f.messages = append(f.messages, msg)
	return f.err
}

func (f *fakeMailer) Name() string { return "fake" }

func newTestHandler(fake *fakeMailer) *Handler {
	return New(service.NewDelivery(fake))
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) api.SendResponse {
	t.Helper()
	var resp api.SendResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// multipartBody builds a send-files request body: the JSON payload in the
// "json" field plus one "attachments" part per file.
func multipartBody(t *testing.T, payload api.SendFilesRequest, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, w.WriteField("json", string(raw)))

	for name, content := range files {
		part, err := w.CreateFormFile("attachments", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHandler_SendText(t *testing.T) {
	t.Run("valid submission returns the confirmation", func(t *testing.T) {
		fake := &fakeMailer{}
		h := newTestHandler(fake)

		body := `{"recipients":["a@b.com"],"content":"hello","language":"plaintext"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/send/text", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.SendText(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success)
		assert.Contains(t, resp.Message, "Text sent successfully")
		require.Len(t, fake.messages, 1)
		assert.Equal(t, "shared-text.txt", fake.messages[0].Attachments[0].Filename)
	})

	t.Run("malformed json is a 400", func(t *testing.T) {
		fake := &fakeMailer{}
		h := newTestHandler(fake)

		req := httptest.NewRequest(http.MethodPost, "/v1/send/text", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()

		h.SendText(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, fake.messages)
	})

	t.Run("missing recipients is a 400", func(t *testing.T) {
		fake := &fakeMailer{}
		h := newTestHandler(fake)

		body := `{"content":"hello","language":"plaintext"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/send/text", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.SendText(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, fake.messages)
	})

	t.Run("mailer failure is a 502", func(t *testing.T) {
		fake := &fakeMailer{err: assert.AnError}
		h := newTestHandler(fake)

		body := `{"recipients":["a@b.com"],"content":"hello","language":"plaintext"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/send/text", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.SendText(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to send email")
		assert.Len(t, fake.messages, 1)
	})
}

func TestHandler_SendFiles(t *testing.T) {
	t.Run("valid multipart submission returns the confirmation", func(t *testing.T) {
		fake := &fakeMailer{}
		h := newTestHandler(fake)

		body, contentType := multipartBody(t,
			api.SendFilesRequest{Recipients: []string{"a@b.com"}},
			map[string]string{"notes.txt": "hello"})
		req := httptest.NewRequest(http.MethodPost, "/v1/send/files", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.SendFiles(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success)
		assert.Contains(t, resp.Message, "Successfully sent 1 file(s)")
		require.Len(t, fake.messages, 1)
		assert.Equal(t, "notes.txt", fake.messages[0].Attachments[0].Filename)
	})

	t.Run("compressed submission delivers gzipped attachments", func(t *testing.T) {
		fake := &fakeMailer{}
		h := newTestHandler(fake)

		body, contentType := multipartBody(t,
			api.SendFilesRequest{Recipients: []string{"a@b.com"}, Compressed: true},
			map[string]string{"data.csv": strings.Repeat("row,row,row\n", 200)})
		req := httptest.NewRequest(http.MethodPost, "/v1/send/files", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.SendFiles(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.Len(t, fake.messages, 1)
		assert.Equal(t, "data.csv.gz", fake.messages[0].Attachments[0].Filename)
		assert.Equal(t, "application/gzip", fake.messages[0].Attachments[0].ContentType)
	})

	t.Run("missing json field is a 400", func(t *testing.T) {
		fake := &fakeMailer{}
		h := newTestHandler(fake)

		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("attachments", "a.txt")
		require.NoError(t, err)
		_, err = part.Write([]byte("x"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/v1/send/files", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		rec := httptest.NewRecorder()

		h.SendFiles(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "missing JSON payload")
		assert.Empty(t, fake.messages)
	})

	t.Run("non-multipart body is a 400", func(t *testing.T) {
		fake := &fakeMailer{}
		h := newTestHandler(fake)

		req := httptest.NewRequest(http.MethodPost, "/v1/send/files", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.SendFiles(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, fake.messages)
	})

	t.Run("more than the attachment cap is a 400", func(t *testing.T) {
		fake := &fakeMailer{}
		h := newTestHandler(fake)

		files := make(map[string]string, maxAttachmentsPerRequest+1)
		for i := 0; i <= maxAttachmentsPerRequest; i++ {
			files[fmt.Sprintf("file-%d.txt", i)] = "x"
		}
		body, contentType := multipartBody(t,
			api.SendFilesRequest{Recipients: []string{"a@b.com"}}, files)
		req := httptest.NewRequest(http.MethodPost, "/v1/send/files", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.SendFiles(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "too many attachments")
		assert.Empty(t, fake.messages)
	})

	t.Run("no files is a 400", func(t *testing.T) {
		fake := &fakeMailer{}
		h := newTestHandler(fake)

		body, contentType := multipartBody(t,
			api.SendFilesRequest{Recipients: []string{"a@b.com"}}, nil)
		req := httptest.NewRequest(http.MethodPost, "/v1/send/files", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.SendFiles(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "No files provided")
		assert.Empty(t, fake.messages)
	})
}

func TestHandler_Probes(t *testing.T) {
	h := newTestHandler(&fakeMailer{})

	for _, probe := range []struct {
		name string
		fn   http.HandlerFunc
	}{
		{"health", h.Health},
		{"ready", h.Ready},
	} {
		t.Run(probe.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			probe.fn(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "ok", rec.Body.String())
		})
	}
}
