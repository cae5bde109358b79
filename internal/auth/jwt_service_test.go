package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue("mirza", 30*time.Minute)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, err := svc.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, "mirza", subject)
}

func TestTokenService_ZeroTTLIsExpired(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue("mirza", 0)
	assert.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestTokenService_TamperedTokenRejected(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue("mirza", 30*time.Minute)
	assert.NoError(t, err)

	// Flip a character in the signature segment.
	tampered := token[:len(token)-2] + "xx"
	_, err = svc.Validate(tampered)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestTokenService_WrongSecretRejected(t *testing.T) {
	issuer := NewTokenService("secret-a")
	verifier := NewTokenService("secret-b")

	token, err := issuer.Issue("mirza", 30*time.Minute)
	assert.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestTokenService_GarbageRejected(t *testing.T) {
	svc := NewTokenService("test-secret")

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Validate(input)
		assert.Equal(t, ErrInvalidToken, err)
	}
}

func TestTokenService_UniqueTokenIDs(t *testing.T) {
	svc := NewTokenService("test-secret")

	first, err := svc.Issue("mirza", time.Hour)
	assert.NoError(t, err)
	second, err := svc.Issue("mirza", time.Hour)
	assert.NoError(t, err)

	// Same subject, same ttl, still distinct tokens thanks to the jti.
	assert.NotEqual(t, first, second)
}
