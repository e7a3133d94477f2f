package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"finance-tracker-server/src/models"
	"finance-tracker-server/src/store"
)

type errorResponse struct {
	Error        string               `json:"error"`
	Notification *models.Notification `json:"notification,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, note *models.Notification) {
	writeJSON(w, status, errorResponse{Error: msg, Notification: note})
}

// statusFor maps store errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// messageFor is the error text shown to the client. Validation messages are
// passed through; anything unexpected is hidden.
func messageFor(err error) string {
	switch statusFor(err) {
	case http.StatusBadRequest:
		return err.Error()
	case http.StatusNotFound:
		return "not found"
	case http.StatusConflict:
		return "already exists"
	default:
		return "internal error"
	}
}

// fail writes the store error together with the last notification the store
// emitted.
func (req *request) fail(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), messageFor(err), req.notes.Last())
}

// badBody answers a request whose body could not be decoded. The store was
// never called, so the failure notification for op is built here.
func badBody(w http.ResponseWriter, op string, err error) {
	note := store.Failure(op)
	writeError(w, http.StatusBadRequest, "invalid request: "+err.Error(), &note)
}

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

// decodeBody reads a JSON body of at most maxBodyBytes. Unknown fields such
// as id or user_id are ignored; the URL and the token decide those.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}
