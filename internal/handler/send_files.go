package handler

import (
	"net/http"

	"github.com/fileflow-dev/fileflow/internal/api"
	"github.com/fileflow-dev/fileflow/internal/errors"
	"github.com/fileflow-dev/fileflow/internal/service"
	"github.com/fileflow-dev/fileflow/internal/utils"
)

// SendFiles accepts a multipart submission of files and emails them as
// attachments to the listed recipients. Nothing is stored server-side.
func (h *Handler) SendFiles(w http.ResponseWriter, r *http.Request) {
	body, attachments, err := parseSendFilesRequest(w, r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, &errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: 400})
		return
	}

	message, err := h.delivery.SendFiles(r.Context(), service.FileTransfer{
		Recipients:  body.Recipients,
		Attachments: attachments,
		Compressed:  body.Compressed,
		Source:      sourceMetadata(r),
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.SendResponse{Success: true, Message: message})
}
