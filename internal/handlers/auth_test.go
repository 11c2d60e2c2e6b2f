package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/otcheredev/hms-backend/internal/services"
)

func TestRegisterValidation(t *testing.T) {
	h := NewAuthHandler(nil)

	cases := map[string]struct {
		body        string
		wantMessage string
	}{
		"missing name":   {`{"email":"a@b.com","phone":"+1555","password":"secret1"}`, "Hospital name is required"},
		"bad email":      {`{"name":"H","email":"not-an-email","phone":"+1555","password":"secret1"}`, "Valid email is required"},
		"missing phone":  {`{"name":"H","email":"a@b.com","password":"secret1"}`, "Phone number is required"},
		"short password": {`{"name":"H","email":"a@b.com","phone":"+1555","password":"abc"}`, "Password must be at least 6 characters long"},
	}

	for name, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tc.body))

		h.Register(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", name, rec.Code)
			continue
		}
		var body struct {
			Errors []string `json:"errors"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Errorf("%s: decode body: %v", name, err)
			continue
		}
		found := false
		for _, msg := range body.Errors {
			if msg == tc.wantMessage {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: %q not in %v", name, tc.wantMessage, body.Errors)
		}
	}
}

func TestRegisterRejectsMalformedBody(t *testing.T) {
	h := NewAuthHandler(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))

	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	h := NewAuthHandler(nil)

	for _, body := range []string{`{}`, `{"email":"a@b.com"}`, `{"password":"secret1"}`, `{"email":"  "}`} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))

		h.Login(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status %d, want 400", body, rec.Code)
		}
	}
}

func TestRespondServiceErrorMapping(t *testing.T) {
	cases := map[int]error{
		http.StatusNotFound:            services.ErrNotFound,
		http.StatusUnauthorized:        services.ErrInvalidCredentials,
		http.StatusForbidden:           services.ErrAccountInactive,
		http.StatusConflict:            services.ErrEmailTaken,
		http.StatusBadRequest:          services.ErrInvalidRole,
		http.StatusInternalServerError: http.ErrBodyNotAllowed,
	}

	for status, err := range cases {
		rec := httptest.NewRecorder()
		respondServiceError(rec, err)
		if rec.Code != status {
			t.Errorf("%v: status %d, want %d", err, rec.Code, status)
		}
	}

	// Unrecognized errors must not leak their text.
	rec := httptest.NewRecorder()
	respondServiceError(rec, http.ErrBodyNotAllowed)
	if strings.Contains(rec.Body.String(), http.ErrBodyNotAllowed.Error()) {
		t.Error("internal error text leaked to the client")
	}
}
