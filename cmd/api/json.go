package main

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/schema"
)

// formDecoder maps multipart form values onto structs tagged with `schema`.
var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// it parses body into Go struct.
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1_048_578 //1mb
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(data)
}

// errorEnvelope is the body of every failed request.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeJSONError(w http.ResponseWriter, status int, message, detail string) error {
	return writeJSON(w, status, &errorEnvelope{
		Success: false,
		Message: message,
		Error:   detail,
	})
}

// successResponse writes {"success": true} merged with fields.
func (app *application) successResponse(w http.ResponseWriter, status int, fields map[string]any) {
	body := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = true
	if err := writeJSON(w, status, body); err != nil {
		app.logger.Errorw("failed to write response", "error", err.Error())
	}
}
