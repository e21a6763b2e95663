package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testValidator() *StaticValidator {
	return NewStaticValidator(map[string]*Identity{
		"good-token": {UserID: "user-1", Name: "Sam", UserType: "student"},
	})
}

func TestStaticValidator(t *testing.T) {
	v := testValidator()

	id, err := v.Validate(context.Background(), "good-token")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if id.UserID != "user-1" {
		t.Errorf("UserID = %q", id.UserID)
	}

	if _, err := v.Validate(context.Background(), "bad-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}

	v.Register("new-token", &Identity{UserID: "user-2"})
	id, err = v.Validate(context.Background(), "new-token")
	if err != nil || id.UserID != "user-2" {
		t.Errorf("registered token should validate: %v, %v", id, err)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"well-formed", "Bearer abc123", "abc123"},
		{"case-insensitive scheme", "bearer abc123", "abc123"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"no token", "Bearer", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if got := BearerToken(r); got != tt.want {
				t.Errorf("BearerToken = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequire(t *testing.T) {
	handler := Require(testValidator())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := IdentityFrom(r.Context())
		if id == nil {
			t.Error("expected identity in context")
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer good-token", http.StatusOK},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
		{"missing token", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestOptional(t *testing.T) {
	var got *Identity
	handler := Optional(testValidator())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = IdentityFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		wantUserID string
	}{
		{"valid token carries identity", "Bearer good-token", "user-1"},
		{"invalid token treated as anonymous", "Bearer nope", ""},
		{"missing token treated as anonymous", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = nil
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			if tt.wantUserID == "" && got != nil {
				t.Errorf("expected anonymous, got %+v", got)
			}
			if tt.wantUserID != "" && (got == nil || got.UserID != tt.wantUserID) {
				t.Errorf("identity = %+v, want UserID %q", got, tt.wantUserID)
			}
		})
	}
}
