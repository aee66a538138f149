package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fileflow-dev/fileflow/internal/logger"
	"github.com/fileflow-dev/fileflow/internal/service"
)

// maxAttachmentsPerRequest bounds how many files one submission may carry.
const maxAttachmentsPerRequest = 10

type Handler struct {
	delivery *service.Delivery
}

func New(delivery *service.Delivery) *Handler {
	return &Handler{delivery: delivery}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
