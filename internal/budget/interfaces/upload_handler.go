package interfaces

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/sebuszqo/BudgetManager/internal/budget/application"
	budgetErrors "github.com/sebuszqo/BudgetManager/internal/budget/errors"
)

type IngestServiceInterface interface {
	Ingest(data []byte) (*application.IngestResult, error)
	MaxUploadBytes() int64
}

type UploadHandler struct {
	service      IngestServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewUploadHandler(
	service IngestServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *UploadHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &UploadHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// HandleUploadCSV accepts a multipart "file" field holding a bank CSV export
// and runs it through the ingest pipeline.
func (h *UploadHandler) HandleUploadCSV(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.service.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			h.respondError(w, http.StatusRequestEntityTooLarge, budgetErrors.ErrFileTooLarge.Error())
			return
		}
		h.respondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		h.respondError(w, http.StatusBadRequest, "Only CSV files are allowed")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}

	result, err := h.service.Ingest(data)
	if err != nil {
		switch {
		case errors.Is(err, budgetErrors.ErrFileTooLarge):
			h.respondError(w, http.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, budgetErrors.ErrUnrecognizedFormat),
			errors.Is(err, budgetErrors.ErrEmptyFile):
			h.respondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("Error processing upload: %v", err)
			h.respondError(w, http.StatusInternalServerError, "Error processing file")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "CSV imported successfully.",
		"data":    result,
	})
}
