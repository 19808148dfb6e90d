package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
)

// Every success payload rides inside a {"data": …} envelope; errors use
// a top-level detail message. Clients rely on both shapes.
type envelope struct {
	Data any `json:"data"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeData(w http.ResponseWriter, r *http.Request, status int, v any) {
	writeJSON(w, r, status, envelope{Data: v})
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"detail": msg})
}

// decodeStrict reads exactly one JSON object into dst, rejecting
// unknown fields and trailing content. It writes the 400 itself and
// reports whether decoding succeeded.
func decodeStrict(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}
