package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dropDatabas3/fluency/internal/token"
)

func newCodec(t *testing.T) *token.Codec {
	t.Helper()
	c, err := token.New("middleware-test-secret", 0)
	if err != nil {
		t.Fatalf("token.New: %v", err)
	}
	return c
}

func TestRequireAuth_ShortCircuits(t *testing.T) {
	codec := newCodec(t)

	handlerRan := false
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerRan = true
		w.WriteHeader(http.StatusOK)
	}), RequireAuth(codec))

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no bearer prefix", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"tampered token", "Bearer eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJhQHguY29tIn0.AAAA"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handlerRan = false
			req := httptest.NewRequest(http.MethodGet, "/cart", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status: got %d, want 401", rec.Code)
			}
			// El handler NUNCA corre con identidad sin verificar.
			if handlerRan {
				t.Fatal("handler invoked despite auth failure")
			}

			var body struct {
				Error   bool   `json:"error"`
				Message string `json:"message"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if !body.Error || body.Message != "unauthorized access" {
				t.Fatalf("body: %+v", body)
			}
		})
	}
}

func TestRequireAuth_InjectsClaim(t *testing.T) {
	codec := newCodec(t)

	raw, err := codec.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var gotSubject string
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cl, ok := GetClaim(r.Context())
		if !ok {
			t.Fatal("no claim in context")
		}
		gotSubject = cl.Subject
		w.WriteHeader(http.StatusOK)
	}), RequireAuth(codec))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if gotSubject != "a@x.com" {
		t.Fatalf("subject: got %q", gotSubject)
	}
}
