package http_server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ipoluianov/jsonstore/internal/core"
	"github.com/ipoluianov/jsonstore/internal/logger"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type setDataRequest struct {
	Key  *string         `json:"key"`
	Data json.RawMessage `json:"data"`
}

type setDataResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Key       string `json:"key"`
	AccessURL string `json:"accessUrl"`
}

type getDataResponse struct {
	Success    bool            `json:"success"`
	Key        string          `json:"key"`
	Data       json.RawMessage `json:"data"`
	StoredDate time.Time       `json:"storedDate"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *HttpServer) writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	message := err.Error()

	var e *core.Error
	switch core.KindOf(err) {
	case core.KindValidation:
		code = http.StatusBadRequest
	case core.KindNotFound:
		code = http.StatusNotFound
	}
	if code != http.StatusInternalServerError {
		if errors.As(err, &e) {
			message = e.Message
		}
	} else {
		logger.ErrorWithStack("[HttpServer]", err)
		if s.config.Http.Production {
			message = "Internal server error"
		}
	}

	writeJSON(w, code, errorResponse{Success: false, Message: message})
}
