package handler

import (
	"net/http"

	"github.com/withbaby/auth-server/internal/model"
)

// writeError maps classified failures to transport status codes. When
// collapseNotFound is set (signin), a missing account is reported with the
// same status and message as a wrong password so the response does not
// reveal which usernames are registered.
func writeError(w http.ResponseWriter, err error, collapseNotFound bool) {
	switch model.CodeOf(err) {
	case model.CodeInvalidCredential:
		http.Error(w, "invalid credential", http.StatusUnauthorized)
	case model.CodeTokenInvalid:
		http.Error(w, "invalid token", http.StatusUnauthorized)
	case model.CodeAccountAlreadyExists:
		http.Error(w, "account already exists", http.StatusConflict)
	case model.CodeAccountNotFound:
		if collapseNotFound {
			http.Error(w, "invalid credential", http.StatusUnauthorized)
			return
		}
		http.Error(w, "account not found", http.StatusNotFound)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
