package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

const testSecret = "unit-test-secret-0123456789"

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := New(testSecret, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_MissingSecret(t *testing.T) {
	if _, err := New("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
	if _, err := New("   ", time.Hour); err == nil {
		t.Fatal("expected error for blank secret")
	}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	c := newTestCodec(t)

	for _, sub := range []string{"a@x.com", "b@x.com", "álvaro@escuela.es"} {
		raw, err := c.Issue(sub)
		if err != nil {
			t.Fatalf("Issue(%q): %v", sub, err)
		}
		cl, err := c.Verify(raw)
		if err != nil {
			t.Fatalf("Verify(%q): %v", sub, err)
		}
		if cl.Subject != sub {
			t.Fatalf("subject: got %q want %q", cl.Subject, sub)
		}
		if got := cl.ExpiresAt.Sub(cl.IssuedAt); got != DefaultTTL {
			t.Fatalf("validity window: got %v want %v", got, DefaultTTL)
		}
	}
}

func TestVerify_Expired(t *testing.T) {
	c := newTestCodec(t)

	// Token firmado con el mismo secreto pero exp en el pasado.
	now := time.Now().UTC()
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, jwtv5.MapClaims{
		"sub": "a@x.com",
		"iat": now.Add(-25 * time.Hour).Unix(),
		"exp": now.Add(-time.Hour).Unix(),
	})
	raw, err := tk.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = c.Verify(raw)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("got %v, want ErrExpired", err)
	}
}

func TestVerify_TamperedSignature(t *testing.T) {
	c := newTestCodec(t)

	raw, err := c.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %d parts", len(parts))
	}

	// Alterar cada byte de la firma debe producir SignatureInvalid, nunca Allow.
	sig := []byte(parts[2])
	for i := 0; i < len(sig); i++ {
		mut := make([]byte, len(sig))
		copy(mut, sig)
		if mut[i] == 'A' {
			mut[i] = 'B'
		} else {
			mut[i] = 'A'
		}
		tampered := parts[0] + "." + parts[1] + "." + string(mut)
		if _, err := c.Verify(tampered); !errors.Is(err, ErrSignatureInvalid) && !errors.Is(err, ErrMalformed) {
			t.Fatalf("byte %d: got %v, want signature/malformed error", i, err)
		}
		if _, err := c.Verify(tampered); err == nil {
			t.Fatalf("byte %d: tampered token accepted", i)
		}
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	c := newTestCodec(t)

	other, err := New("a-completely-different-secret", 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	raw, err := other.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := c.Verify(raw); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("got %v, want ErrSignatureInvalid", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	c := newTestCodec(t)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d", "ey.ey"} {
		if _, err := c.Verify(raw); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Verify(%q): got %v, want ErrMalformed", raw, err)
		}
	}
}

func TestVerify_MissingSubject(t *testing.T) {
	c := newTestCodec(t)

	now := time.Now().UTC()
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, jwtv5.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	})
	raw, err := tk.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := c.Verify(raw); !errors.Is(err, ErrMalformed) {
		t.Fatalf("got %v, want ErrMalformed", err)
	}
}
