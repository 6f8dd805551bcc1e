// Package httpjson holds the JSON request/response conventions shared by all
// API handlers: success payloads vary per endpoint, error payloads always
// carry a "message" field.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxBodyBytes caps request bodies; the API only carries small documents.
const maxBodyBytes = 1 << 20

// Respond writes v as JSON with the given status code.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the standard error envelope {"message": ...}.
func Error(w http.ResponseWriter, status int, message string) {
	Respond(w, status, map[string]string{"message": message})
}

// Decode reads the request body into dst, rejecting unknown trailing data
// and oversized bodies. An empty body is an error; callers treat it the same
// as malformed JSON.
func Decode(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}
