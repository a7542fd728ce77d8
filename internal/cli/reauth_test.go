package cli

import (
	"context"
	"errors"
	"testing"

	"skyci/internal/api"
)

func TestRunWithReauthRetriesOnce(t *testing.T) {
	calls := 0
	err := RunWithReauth(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return &api.UnauthorizedError{}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected exactly 2 attempts, got %d", calls)
	}
}

func TestRunWithReauthGivesUpAfterSecondRejection(t *testing.T) {
	calls := 0
	err := RunWithReauth(context.Background(), func(ctx context.Context) error {
		calls++
		return &api.UnauthorizedError{}
	})
	var unauthorized *api.UnauthorizedError
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected UnauthorizedError, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected exactly 2 attempts, got %d", calls)
	}
}

func TestRunWithReauthDoesNotRetryOtherErrors(t *testing.T) {
	calls := 0
	wantErr := &api.NotFoundError{}
	err := RunWithReauth(context.Background(), func(ctx context.Context) error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the original error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected a single attempt, got %d", calls)
	}
}

func TestRunWithReauthPassesThroughSuccess(t *testing.T) {
	if err := RunWithReauth(context.Background(), func(ctx context.Context) error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
