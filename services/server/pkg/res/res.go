// Package res writes the JSON bodies the task board backend answers with.
package res

import (
	"bytes"
	"encoding/json"
	"net/http"
)

const contentType = "application/json; charset=utf-8"

// JSON buffers the encoded body before writing headers. Data that cannot be
// encoded is answered with 500.
func JSON(w http.ResponseWriter, data any, statusCode int) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"cannot encode response"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
}

// Empty answers with {} the way a deleted resource is acknowledged.
func Empty(w http.ResponseWriter, statusCode int) {
	JSON(w, struct{}{}, statusCode)
}

func Error(w http.ResponseWriter, msg string, statusCode int) {
	JSON(w, struct {
		Error string `json:"error"`
	}{msg}, statusCode)
}
