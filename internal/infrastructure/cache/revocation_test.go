package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryRevocationStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	s := NewMemoryRevocationStore()
	s.now = func() time.Time { return now }

	if revoked, _ := s.IsRevoked(ctx, "j1"); revoked {
		t.Fatalf("unknown token reported revoked")
	}
	if err := s.Revoke(ctx, "j1", time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if revoked, _ := s.IsRevoked(ctx, "j1"); !revoked {
		t.Fatalf("expected revoked")
	}

	now = now.Add(time.Minute)
	if revoked, _ := s.IsRevoked(ctx, "j1"); revoked {
		t.Fatalf("entry should expire with the token")
	}
	if len(s.entries) != 0 {
		t.Fatalf("expired entry not purged")
	}
}
