package auth

import (
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestIssueAndParseToken(t *testing.T) {
	tok, err := IssueToken(testSecret, "u-1", "alice", true, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	p, err := ParseToken(tok, testSecret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.ID != "u-1" || p.Username != "alice" || !p.Admin {
		t.Fatalf("principal mismatch: %+v", p)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	tok, err := IssueToken(testSecret, "u-1", "alice", false, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := ParseToken(tok, "wrong"); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	tok, err := IssueToken(testSecret, "u-1", "alice", false, -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := ParseToken(tok, testSecret); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestParseToken_MissingClaims(t *testing.T) {
	tok, err := IssueToken(testSecret, "u-1", "", false, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := ParseToken(tok, testSecret); err == nil {
		t.Fatalf("expected invalid claims error")
	}
}

func TestIssueToken_EmptySecret(t *testing.T) {
	if _, err := IssueToken("", "u-1", "alice", false, time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
