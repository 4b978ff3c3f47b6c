package apiutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/codr1/leaguedesk/internal/apiclient"
	"github.com/codr1/leaguedesk/internal/validation"
)

func TestWriteErrorStatuses(t *testing.T) {
	var fieldErrs validation.Errors
	fieldErrs.Add("matchesPerWeek", "must be at least 1")

	tests := []struct {
		name    string
		err     error
		status  int
		message string
		fields  int
	}{
		{name: "validation", err: fmt.Errorf("wrapped: %w", fieldErrs.Err()), status: http.StatusUnprocessableEntity, message: "Validation failed", fields: 1},
		{name: "handler error", err: HandlerError{Status: http.StatusConflict, Message: "Draft was modified"}, status: http.StatusConflict, message: "Draft was modified"},
		{name: "backend not found", err: &apiclient.APIError{Status: http.StatusNotFound, Message: "Season not found"}, status: http.StatusNotFound, message: "Season not found"},
		{name: "backend failure", err: &apiclient.APIError{Status: http.StatusServiceUnavailable, Message: "Maintenance"}, status: http.StatusBadGateway, message: "Maintenance"},
		{name: "session expired", err: fmt.Errorf("list teams: %w", apiclient.ErrSessionExpired), status: http.StatusUnauthorized, message: "Session expired"},
		{name: "unexpected", err: errors.New("disk on fire"), status: http.StatusInternalServerError, message: "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error != tt.message || len(body.Fields) != tt.fields {
				t.Fatalf("unexpected body %+v", body)
			}
		})
	}
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Aces"}{"name":"Breakers"}`))
	if err := DecodeJSON(req, &dst); err == nil {
		t.Fatal("expected error for trailing JSON")
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Aces","captain":1}`))
	if err := DecodeJSON(req, &dst); err == nil {
		t.Fatal("expected error for unknown field")
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Aces"}`))
	if err := DecodeJSON(req, &dst); err != nil || dst.Name != "Aces" {
		t.Fatalf("DecodeJSON = %v, name %q", err, dst.Name)
	}
}

func TestPathAndQueryParsing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/seasons/7/weeks/0?revision=3", nil)
	req.SetPathValue("id", "7")
	req.SetPathValue("week", "0")

	if id, err := PathInt64(req, "id"); err != nil || id != 7 {
		t.Fatalf("PathInt64 = %d, %v", id, err)
	}
	if _, err := PathInt64(req, "week"); err == nil {
		t.Fatal("expected error for zero id")
	}
	if week, err := PathInt(req, "week"); err != nil || week != 0 {
		t.Fatalf("PathInt = %d, %v", week, err)
	}
	if revision, err := OptionalInt64Query(req, "revision"); err != nil || revision != 3 {
		t.Fatalf("OptionalInt64Query = %d, %v", revision, err)
	}
	if missing, err := OptionalInt64Query(req, "other"); err != nil || missing != 0 {
		t.Fatalf("missing query = %d, %v", missing, err)
	}
}
