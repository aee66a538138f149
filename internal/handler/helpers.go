package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fileflow-dev/fileflow/internal/api"
	"github.com/fileflow-dev/fileflow/internal/domain"
	"github.com/fileflow-dev/fileflow/internal/service"
	"github.com/fileflow-dev/fileflow/internal/utils"
	"github.com/fileflow-dev/fileflow/internal/validation"
)

// parseSendFilesRequest parses the multipart submission: the JSON payload in
// the "json" form field plus the uploaded "attachments" parts. The request
// body is bounded before parsing; per-file size checks run at intake.
func parseSendFilesRequest(w http.ResponseWriter, r *http.Request) (body api.SendFilesRequest, attachments []domain.Attachment, err error) {
	maxRequestSize := validation.CalculateMaxRequestSize(
		domain.MaxPayloadBytes*maxAttachmentsPerRequest, 1<<20)
	if err = validation.ValidateAndParseMultipart(r, w, maxRequestSize); err != nil {
		err = fmt.Errorf("%w: request exceeds the upload limit. Please reduce the number or size of files",
			validation.ErrPayloadTooLarge)
		return
	}

	jsonPayload := r.FormValue("json")
	if jsonPayload == "" {
		err = fmt.Errorf("missing JSON payload in multipart form")
		return
	}

	if err = utils.DecodeValidate(strings.NewReader(jsonPayload), &body); err != nil {
		return
	}

	files := r.MultipartForm.File["attachments"]
	if len(files) > maxAttachmentsPerRequest {
		err = fmt.Errorf("too many attachments: at most %d files per submission", maxAttachmentsPerRequest)
		return
	}

	attachments, err = validation.CollectAttachments(files)
	return
}

// sourceMetadata captures sender provenance for the delivery log.
func sourceMetadata(r *http.Request) service.SourceMetadata {
	ip, _ := utils.GetIP(r)
	return service.SourceMetadata{
		IP:        ip,
		UserAgent: r.UserAgent(),
		Locale:    r.Header.Get("Accept-Language"),
		Referrer:  r.Referer(),
		Timestamp: time.Now(),
	}
}
