package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"backend/internal/utils"
)

// Dispatcher is the dual-mode entry point: a single remote attempt, then an
// unconditional fallback to the in-process router. Two states, one
// transition, no retries.
type Dispatcher struct {
	// BaseURL of the real backend; empty disables the remote attempt.
	BaseURL string
	Client  *http.Client
	Local   *Router
	// BearerToken forwards the caller's auth to the remote backend.
	BearerToken string
}

func NewDispatcher(baseURL string, local *Router) *Dispatcher {
	return &Dispatcher{
		BaseURL: strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		Client:  &http.Client{Timeout: 15 * time.Second},
		Local:   local,
	}
}

// Do executes a logical request remote-first. Any remote failure — network
// error or non-2xx — transitions straight to the local router.
func (d *Dispatcher) Do(ctx context.Context, req Request) (Response, error) {
	if d.BaseURL != "" {
		resp, err := d.tryRemote(ctx, req)
		if err == nil {
			return resp, nil
		}
		utils.LogEvent("", "dispatch", "fallback_local",
			fmt.Sprintf("path=%s reason=%v", req.Path, err))
	}
	return d.Local.Handle(ctx, req)
}

func (d *Dispatcher) tryRemote(ctx context.Context, req Request) (Response, error) {
	u := d.BaseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return Response{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if d.BearerToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+d.BearerToken)
	}

	httpResp, err := d.Client.Do(httpReq)
	if err != nil {
		return Response{}, err
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Response{}, err
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return Response{}, fmt.Errorf("%s", TranslateHTTPError(httpResp.StatusCode, raw))
	}

	var decoded any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return Response{}, err
		}
	}
	return Response{Status: httpResp.StatusCode, Body: decoded}, nil
}

// TranslateHTTPError turns a remote non-2xx into the human-readable message
// the UI shows. Raw store internals and stack traces never pass through.
func TranslateHTTPError(status int, body []byte) string {
	switch {
	case status >= 500:
		return "Server is temporarily unavailable"
	case status == 401 || status == 403:
		return "You are not authorized"
	case status == 404:
		return "Content not found"
	}

	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := ""
	if json.Unmarshal(body, &parsed) == nil {
		if parsed.Error != "" {
			msg = parsed.Error
		} else if parsed.Message != "" {
			msg = parsed.Message
		}
	}
	if msg == "" {
		return fmt.Sprintf("Request failed (HTTP %d)", status)
	}
	return fmt.Sprintf("%s (HTTP %d)", msg, status)
}
