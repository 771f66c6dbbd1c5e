package revocation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/softhub/internal/db"
)

type mockStore struct {
	getFn        func(ctx context.Context, key string) ([]byte, error)
	setWithTTLFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setWithTTLFn != nil {
		return m.setWithTTLFn(ctx, key, value, ttl)
	}
	return nil
}

func TestRevoke(t *testing.T) {
	ms := &mockStore{}
	var gotKey string
	var gotTTL time.Duration
	ms.setWithTTLFn = func(_ context.Context, key string, _ []byte, ttl time.Duration) error {
		gotKey, gotTTL = key, ttl
		return nil
	}
	s := New(ms, "softhub:")
	if err := s.Revoke(context.Background(), "jti-1", 3*time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "softhub:revoked:jti-1" || gotTTL != 3*time.Hour {
		t.Errorf("SET %s ttl=%v", gotKey, gotTTL)
	}
}

func TestRevoke_ClampsTTL(t *testing.T) {
	ms := &mockStore{}
	ms.setWithTTLFn = func(_ context.Context, _ string, _ []byte, ttl time.Duration) error {
		if ttl != minTTL {
			t.Errorf("ttl = %v, want %v", ttl, minTTL)
		}
		return nil
	}
	if err := New(ms, "softhub:").Revoke(context.Background(), "jti-1", -time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRevoke_EmptyID(t *testing.T) {
	if err := New(&mockStore{}, "softhub:").Revoke(context.Background(), "", time.Hour); err == nil {
		t.Fatal("expected error")
	}
}

func TestIsRevoked(t *testing.T) {
	tests := []struct {
		name    string
		getErr  error
		want    bool
		wantErr bool
	}{
		{"revoked", nil, true, false},
		{"not revoked", db.ErrKeyNotFound, false, false},
		{"store error", errors.New("timeout"), false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ms := &mockStore{getFn: func(_ context.Context, _ string) ([]byte, error) {
				if tc.getErr != nil {
					return nil, tc.getErr
				}
				return []byte("1"), nil
			}}
			got, err := New(ms, "softhub:").IsRevoked(context.Background(), "jti-1")
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
