package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// decode reads a JSON object into v. An empty body decodes as {}.
func decode(r *http.Request, v any) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return true
	}
	return json.Unmarshal(body, v) == nil
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decode(r, &req) {
		writeMessage(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	name, err := text("name", req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	email, err := text("email", req.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	password, err := text("password", req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	session, err := s.users.Register(r.Context(), name, email, password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "user registered",
		"request_id", RequestIDFromContext(r.Context()),
		"user_id", session.User.ID)
	s.respond(w, r, http.StatusCreated, newAuthResponse(session))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(r, &req) {
		writeMessage(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	email, err := text("email", req.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	password, err := text("password", req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	session, err := s.users.Login(r.Context(), email, password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.respond(w, r, http.StatusOK, newAuthResponse(session))
}

// owner returns the id placed in the context by requireAuth.
func owner(ctx context.Context) string {
	id, _ := UserIDFromContext(ctx)
	return id
}

func (s *Server) handleSessionCheck(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, sessionCheckResponse{Message: MsgLoggedIn, UserID: owner(r.Context())})
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	list, err := s.expenses.List(r.Context(), owner(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]expenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, newExpenseResponse(e))
	}
	s.respond(w, r, http.StatusOK, out)
}

func (s *Server) readExpenseRequest(w http.ResponseWriter, r *http.Request) (expenseRequest, bool) {
	var req expenseRequest
	if !decode(r, &req) {
		writeMessage(w, http.StatusBadRequest, MsgInvalidJSON)
		return req, false
	}
	return req, true
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readExpenseRequest(w, r)
	if !ok {
		return
	}

	in, err := req.input()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	e, err := s.expenses.Create(r.Context(), owner(r.Context()), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.respond(w, r, http.StatusCreated, newExpenseResponse(e))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readExpenseRequest(w, r)
	if !ok {
		return
	}

	in, err := req.input()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	e, err := s.expenses.Update(r.Context(), owner(r.Context()), r.PathValue("id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.respond(w, r, http.StatusOK, newExpenseResponse(e))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.Delete(r.Context(), owner(r.Context()), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, MsgExpenseDeleted)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	res, err := s.exports.Export(r.Context(), owner(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.respond(w, r, http.StatusOK, exportResponse{Key: res.Key, URL: res.URL, Count: res.Count})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			s.logger.Warn(r.Context(), "readiness check failed", "error", err)
			s.respond(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	s.respond(w, r, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusNotFound, MsgRouteNotFound)
}
