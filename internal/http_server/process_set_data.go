package http_server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

func (s *HttpServer) processSetData(w http.ResponseWriter, r *http.Request) {
	var req setDataRequest

	r.Body = http.MaxBytesReader(w, r.Body, s.config.Http.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(&req)
	if err == nil {
		// the body must hold exactly one JSON value
		if extra := dec.Decode(&struct{}{}); !errors.Is(extra, io.EOF) {
			err = errors.New("unexpected data after JSON object")
			if isBodyTooLarge(extra) {
				err = extra
			}
		}
	}
	if err != nil {
		code := http.StatusBadRequest
		if isBodyTooLarge(err) {
			code = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, code, errorResponse{Success: false, Message: "invalid request body: " + err.Error()})
		return
	}

	key := ""
	if req.Key != nil {
		key = *req.Key
	}

	result, err := s.core.Put(r.Context(), key, req.Data)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, setDataResponse{
		Success:   true,
		Message:   "Data stored successfully",
		Key:       result.Key,
		AccessURL: result.AccessURL,
	})
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
