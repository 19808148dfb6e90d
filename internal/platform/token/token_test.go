package token

import (
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	raw, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	subject, err := issuer.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "user-1" {
		t.Fatalf("subject = %q, want user-1", subject)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	raw, err := NewIssuer("secret-a", time.Hour).Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewIssuer("secret-b", time.Hour).Verify(raw); err == nil {
		t.Fatal("token signed with another secret verified")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	raw, err := NewIssuer("secret", -time.Minute).Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewIssuer("secret", -time.Minute).Verify(raw); err == nil {
		t.Fatal("expired token verified")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := NewIssuer("secret", time.Hour).Verify("not-a-token"); err == nil {
		t.Fatal("garbage verified")
	}
}

func TestTTLSeconds(t *testing.T) {
	if got := NewIssuer("secret", 24*time.Hour).TTLSeconds(); got != 86400 {
		t.Fatalf("ttl = %d, want 86400", got)
	}
}
