package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/services"
)

type registerRequest struct {
	Name     json.RawMessage `json:"name"`
	Email    json.RawMessage `json:"email"`
	Password json.RawMessage `json:"password"`
}

type loginRequest struct {
	Email    json.RawMessage `json:"email"`
	Password json.RawMessage `json:"password"`
}

// expenseRequest accepts only the client-writable fields; everything else in
// the body (user, _id, createdAt) is dropped by the decoder.
type expenseRequest struct {
	Title    json.RawMessage `json:"title"`
	Amount   json.RawMessage `json:"amount"`
	Category json.RawMessage `json:"category"`
	Date     json.RawMessage `json:"date"`
	Note     json.RawMessage `json:"note"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type expenseResponse struct {
	ID        string      `json:"_id"`
	UserID    string      `json:"user"`
	Title     string      `json:"title"`
	Amount    json.Number `json:"amount"`
	Category  string      `json:"category"`
	Date      time.Time   `json:"date"`
	Note      string      `json:"note"`
	CreatedAt time.Time   `json:"createdAt"`
}

type sessionCheckResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type exportResponse struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}

func newAuthResponse(s *services.Session) authResponse {
	return authResponse{
		Token: s.Token,
		User:  userResponse{ID: s.User.ID, Name: s.User.Name, Email: s.User.Email},
	}
}

func newExpenseResponse(e *models.Expense) expenseResponse {
	return expenseResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		Title:     e.Title,
		Amount:    json.Number(e.Amount.String()),
		Category:  e.Category,
		Date:      e.Date.UTC(),
		Note:      e.Note,
		CreatedAt: e.CreatedAt.UTC(),
	}
}

// scalar turns a raw JSON value into its textual form: strings lose their
// quotes, numbers and booleans keep their literal. Absent and null give nil.
// Objects and arrays are rejected.
func scalar(field string, raw json.RawMessage) (*string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return &s, nil
	case '{', '[':
		return nil, common.NewValidationError(fmt.Sprintf("Field %s must be a string or a number.", field))
	default:
		s := string(raw)
		return &s, nil
	}
}

// isNumber reports whether raw is a JSON number literal.
func isNumber(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && (raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'))
}

// text is scalar for fields whose textual form is used verbatim.
func text(field string, raw json.RawMessage) (string, error) {
	p, err := scalar(field, raw)
	if err != nil || p == nil {
		return "", err
	}
	return *p, nil
}

func (r expenseRequest) input() (services.ExpenseInput, error) {
	var in services.ExpenseInput
	var err error

	if in.Title, err = scalar("title", r.Title); err != nil {
		return in, err
	}
	if in.Amount, err = scalar("amount", r.Amount); err != nil {
		return in, common.NewValidationError(services.MsgAmountNotNumber)
	}
	if in.Category, err = scalar("category", r.Category); err != nil {
		return in, err
	}
	if in.Date, err = scalar("date", r.Date); err != nil {
		return in, common.NewValidationError(services.MsgDateInvalid)
	}
	in.DateIsNumber = isNumber(r.Date)
	if in.Note, err = scalar("note", r.Note); err != nil {
		return in, err
	}
	return in, nil
}
