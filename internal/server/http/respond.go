package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/expensetracker/internal/common"
)

// Client-facing messages that are not produced by the services.
const (
	MsgInvalidJSON        = "Invalid JSON in request body"
	MsgBodyTooLarge       = "Request body too large."
	MsgNoToken            = "No Token, Authorization Denied"
	MsgTokenInvalid       = "Token is not Valid"
	MsgEmailTaken         = "Email Is Already Registered."
	MsgInvalidCredentials = "Invalid email or password."
	MsgExpenseNotFound    = "Expense Not Found OR Not Owned By You."
	MsgExpenseDeleted     = "Expense Deleted."
	MsgLoggedIn           = "You Are Logged In."
	MsgRouteNotFound      = "Route Not Found."
	MsgServerError        = "Server Error."
)

type messageResponse struct {
	Message string `json:"message"`
}

// writeJSON encodes v before anything is sent, so a failed encoding leaves
// the response untouched.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
	return nil
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	_ = writeJSON(w, status, messageResponse{Message: msg})
}

// respond writes v with status, or a logged 500 when v cannot be encoded.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := writeJSON(w, status, v); err != nil {
		s.writeError(w, r, fmt.Errorf("encode response: %w", err))
	}
}

// writeError maps a service error onto a status and a client-facing
// message. Anything unrecognized is logged and answered with 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *common.ValidationError

	switch {
	case errors.As(err, &ve):
		writeMessage(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, common.ErrorAlreadyExists):
		writeMessage(w, http.StatusBadRequest, MsgEmailTaken)
	case errors.Is(err, common.ErrorInvalidCredentials):
		writeMessage(w, http.StatusBadRequest, MsgInvalidCredentials)
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, MsgExpenseNotFound)
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		writeMessage(w, http.StatusUnauthorized, MsgTokenInvalid)
	default:
		s.logger.Error(r.Context(), "request failed",
			"request_id", RequestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err)
		writeMessage(w, http.StatusInternalServerError, MsgServerError)
	}
}
