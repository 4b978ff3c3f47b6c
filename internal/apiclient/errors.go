package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxErrorBodyBytes = 64 << 10
	maxMessageLength  = 200
)

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Method  string
	Path    string
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	return e.Message
}

// IsStatus reports whether err wraps an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == status
	}
	return false
}

func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrSessionExpired) || IsStatus(err, http.StatusUnauthorized)
}

func newAPIError(resp *http.Response, method, path string) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	message := messageFromBody(resp.Header.Get("Content-Type"), body)
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	if message == "" {
		message = fmt.Sprintf("Request failed with status %d", resp.StatusCode)
	}
	return &APIError{
		Status:  resp.StatusCode,
		Method:  method,
		Path:    path,
		Message: message,
		Body:    body,
	}
}

func messageFromBody(contentType string, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}
	contentType = strings.ToLower(contentType)

	if strings.Contains(contentType, "json") || trimmed[0] == '{' {
		if message := messageFromJSON(trimmed); message != "" {
			return truncate(message)
		}
	}
	if strings.Contains(contentType, "text/html") || looksLikeHTML(trimmed) {
		if message := messageFromHTML(trimmed); message != "" {
			return truncate(message)
		}
		return ""
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return ""
	}
	return truncate(collapseWhitespace(string(trimmed)))
}

func messageFromJSON(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}

	if message := rawString(fields["message"]); message != "" {
		return message
	}
	if raw, ok := fields["error"]; ok {
		if message := rawString(raw); message != "" {
			return message
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &nested); err == nil && strings.TrimSpace(nested.Message) != "" {
			return strings.TrimSpace(nested.Message)
		}
	}
	if message := rawString(fields["detail"]); message != "" {
		return message
	}
	if raw, ok := fields["errors"]; ok {
		return firstListedError(raw)
	}
	return ""
}

// firstListedError handles ["msg"], [{"message": "msg"}], {"field": "msg"}
// and {"field": ["msg"]}.
func firstListedError(raw json.RawMessage) string {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		for _, item := range list {
			if message := rawString(item); message != "" {
				return message
			}
			var nested struct {
				Field   string `json:"field"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(item, &nested); err == nil && strings.TrimSpace(nested.Message) != "" {
				if nested.Field != "" {
					return nested.Field + ": " + strings.TrimSpace(nested.Message)
				}
				return strings.TrimSpace(nested.Message)
			}
		}
		return ""
	}

	var byField map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byField); err != nil {
		return ""
	}
	keys := make([]string, 0, len(byField))
	for key := range byField {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if message := rawString(byField[key]); message != "" {
			return key + ": " + message
		}
		var messages []string
		if err := json.Unmarshal(byField[key], &messages); err == nil {
			for _, message := range messages {
				if strings.TrimSpace(message) != "" {
					return key + ": " + strings.TrimSpace(message)
				}
			}
		}
	}
	return ""
}

func messageFromHTML(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	if title := collapseWhitespace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if heading := collapseWhitespace(doc.Find("h1").First().Text()); heading != "" {
		return heading
	}
	return collapseWhitespace(doc.Find("body").Text())
}

func looksLikeHTML(body []byte) bool {
	prefix := strings.ToLower(string(body[:min(len(body), 64)]))
	return strings.HasPrefix(prefix, "<!doctype html") || strings.HasPrefix(prefix, "<html")
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}

func collapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

func truncate(message string) string {
	runes := []rune(message)
	if len(runes) <= maxMessageLength {
		return message
	}
	return string(runes[:maxMessageLength-3]) + "..."
}
