package handler

import (
	"net/http"

	"github.com/fileflow-dev/fileflow/internal/api"
	"github.com/fileflow-dev/fileflow/internal/domain"
	"github.com/fileflow-dev/fileflow/internal/service"
	"github.com/fileflow-dev/fileflow/internal/utils"
)

// SendText accepts pasted text or code and emails it as an attachment to
// the listed recipients.
func (h *Handler) SendText(w http.ResponseWriter, r *http.Request) {
	var body api.SendTextRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	message, err := h.delivery.SendText(r.Context(), service.TextTransfer{
		Recipients: body.Recipients,
		Content:    body.Content,
		Kind:       domain.ContentKind(body.Language),
		Filename:   body.Filename,
		Compressed: body.Compressed,
		Source:     sourceMetadata(r),
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.SendResponse{Success: true, Message: message})
}
