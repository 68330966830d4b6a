package helper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	auth := SetupAuth("test-secret")

	token, err := auth.GenerateToken(7, "jo@example.com", "ADMIN")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := auth.VerifyToken("Bearer " + token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("user id = %d, want 7", claims.UserID)
	}
	if claims.Email != "jo@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if claims.Role != "ADMIN" {
		t.Errorf("role = %q, want ADMIN", claims.Role)
	}

	// the bare token (no Bearer prefix) must verify too
	if _, err := auth.VerifyToken(token); err != nil {
		t.Errorf("bare token rejected: %v", err)
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	token, err := SetupAuth("secret-a").GenerateToken(1, "jo@example.com", "STAFF")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := SetupAuth("secret-b").VerifyToken(token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

// a well-signed token with missing or mistyped claims must fail
// verification, never panic the request.
func TestVerifyTokenRejectsMalformedClaims(t *testing.T) {
	auth := SetupAuth("test-secret")
	exp := time.Now().Add(time.Hour).Unix()

	cases := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"missing user_id", jwt.MapClaims{"email": "jo@example.com", "exp": exp}},
		{"missing email", jwt.MapClaims{"user_id": 1, "exp": exp}},
		{"user_id wrong type", jwt.MapClaims{"user_id": "one", "email": "jo@example.com", "exp": exp}},
		{"missing exp", jwt.MapClaims{"user_id": 1, "email": "jo@example.com"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, tc.claims)
			signed, err := token.SignedString([]byte("test-secret"))
			if err != nil {
				t.Fatalf("sign token: %v", err)
			}
			if _, err := auth.VerifyToken(signed); err == nil {
				t.Fatal("malformed claims accepted")
			}
		})
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	auth := SetupAuth("test-secret")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"email":   "jo@example.com",
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := auth.VerifyToken(signed); err == nil {
		t.Fatal("expired token accepted")
	}
}
