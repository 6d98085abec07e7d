package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/client/models"
	"github.com/dmitrijs2005/expensetracker/internal/common"
)

// HTTPClient talks to the expense API and attaches the bearer token to every
// request. A 401 drops the token and yields ErrUnauthorized.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	maxBody int64

	mu    sync.RWMutex
	token string
}

// MaxResponseBytes caps how much of a response body is read.
const MaxResponseBytes = 8 << 20

func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		maxBody: MaxResponseBytes,
	}, nil
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type messageBody struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}
	if int64(len(data)) > c.maxBody {
		return fmt.Errorf("%w: over %d bytes", ErrTooLarge, c.maxBody)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.SetToken("")
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var m messageBody
		if err := json.Unmarshal(data, &m); err != nil || m.Message == "" {
			m.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: m.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

func (c *HTTPClient) authenticate(ctx context.Context, path string, in any) (*models.Session, error) {
	var s models.Session
	if err := c.do(ctx, http.MethodPost, path, in, &s); err != nil {
		return nil, err
	}
	if s.Token == "" {
		return nil, errors.New("server returned an empty token")
	}
	c.SetToken(s.Token)
	return &s, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (*models.Session, error) {
	return c.authenticate(ctx, "/api/auth/register", map[string]string{
		"name": name, "email": email, "password": password,
	})
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	return c.authenticate(ctx, "/api/auth/login", map[string]string{
		"email": email, "password": password,
	})
}

// Check asks the server whether the current token is still accepted and
// returns the owner id it resolves to.
func (c *HTTPClient) Check(ctx context.Context) (string, error) {
	var m messageBody
	if err := c.do(ctx, http.MethodGet, "/api/expenses/test", nil, &m); err != nil {
		return "", err
	}
	return m.UserID, nil
}

func (c *HTTPClient) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	var list []models.Expense
	if err := c.do(ctx, http.MethodGet, "/api/expenses", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) CreateExpense(ctx context.Context, in models.ExpenseInput) (*models.Expense, error) {
	var e models.Expense
	if err := c.do(ctx, http.MethodPost, "/api/expenses", in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *HTTPClient) UpdateExpense(ctx context.Context, id string, in models.ExpenseInput) (*models.Expense, error) {
	var e models.Expense
	if err := c.do(ctx, http.MethodPut, "/api/expenses/"+url.PathEscape(id), in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *HTTPClient) DeleteExpense(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/expenses/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) Export(ctx context.Context) (*models.Export, error) {
	var e models.Export
	if err := c.do(ctx, http.MethodPost, "/api/expenses/export", nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
