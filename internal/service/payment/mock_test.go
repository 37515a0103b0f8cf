package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMockService(t *testing.T) {
	mock := NewMockService()
	if mock == nil {
		t.Fatal("expected non-nil mock")
	}
	ctx := context.Background()

	auth, err := mock.Authorize(ctx, 1, decimal.RequireFromString("100.00"))
	if err != nil {
		t.Fatalf("unexpected authorize error: %v", err)
	}
	if !auth.Authorized || auth.TransactionID != DefaultMockTransactionID {
		t.Fatalf("unexpected authorization: %+v", auth)
	}
	if !mock.LastAmount.Equal(decimal.RequireFromString("100")) || mock.LastCustomerID != 1 {
		t.Fatalf("unexpected recorded request: customer=%d amount=%s", mock.LastCustomerID, mock.LastAmount)
	}

	if err := mock.Cancel(ctx, 1, auth.TransactionID); err != nil {
		t.Fatalf("unexpected cancel error: %v", err)
	}
	if len(mock.Canceled) != 1 || mock.Canceled[0] != DefaultMockTransactionID {
		t.Fatalf("unexpected canceled transactions: %v", mock.Canceled)
	}

	mock.SetAuthorized(false)
	auth, err = mock.Authorize(ctx, 1, decimal.RequireFromString("100.00"))
	if err != nil {
		t.Fatalf("unexpected authorize error: %v", err)
	}
	if auth.Authorized || auth.TransactionID != "" {
		t.Fatalf("expected declined authorization without transaction id, got %+v", auth)
	}

	mock.AuthorizeErr = errors.New("provider unreachable")
	mock.CancelErr = errors.New("provider unreachable")
	if _, err := mock.Authorize(ctx, 1, decimal.Zero); err == nil {
		t.Fatal("expected authorize error")
	}
	if err := mock.Cancel(ctx, 1, "999"); err == nil {
		t.Fatal("expected cancel error")
	}

	if authorize, cancel := mock.Calls(); authorize != 3 || cancel != 2 {
		t.Fatalf("unexpected call counters: authorize=%d cancel=%d", authorize, cancel)
	}
}
