package services

import (
	"context"
	"errors"
	"testing"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
)

func TestVerifyRequiresReference(t *testing.T) {
	svc := NewPaymentService(&fakeTransactionChecker{})

	for _, reference := range []string{"", "   "} {
		if _, err := svc.Verify(context.Background(), reference); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("reference %q: expected ErrInvalidArgument, got %v", reference, err)
		}
	}
}

func TestVerifyClassifiesGatewayRejection(t *testing.T) {
	t.Run("client error from gateway", func(t *testing.T) {
		svc := NewPaymentService(&fakeTransactionChecker{
			err: &midtrans.Error{Message: "transaction doesn't exist", StatusCode: 404, RawError: errors.New("404")},
		})
		if _, err := svc.Verify(context.Background(), "ORD-1234-567890"); !errors.Is(err, ErrFailedPrecondition) {
			t.Errorf("expected ErrFailedPrecondition, got %v", err)
		}
	})

	t.Run("not-found status in body", func(t *testing.T) {
		svc := NewPaymentService(&fakeTransactionChecker{
			response: &coreapi.TransactionStatusResponse{StatusCode: "404"},
		})
		if _, err := svc.Verify(context.Background(), "ORD-1234-567890"); !errors.Is(err, ErrFailedPrecondition) {
			t.Errorf("expected ErrFailedPrecondition, got %v", err)
		}
	})

	t.Run("server error is not a precondition failure", func(t *testing.T) {
		svc := NewPaymentService(&fakeTransactionChecker{
			err: &midtrans.Error{Message: "internal server error", StatusCode: 500, RawError: errors.New("500")},
		})
		_, err := svc.Verify(context.Background(), "ORD-1234-567890")
		if err == nil {
			t.Fatal("expected an error")
		}
		if errors.Is(err, ErrFailedPrecondition) || errors.Is(err, ErrInvalidArgument) {
			t.Errorf("server errors must stay unclassified, got %v", err)
		}
	})
}

func TestVerifyNormalizesSettlement(t *testing.T) {
	svc := NewPaymentService(&fakeTransactionChecker{
		response: &coreapi.TransactionStatusResponse{
			StatusCode:        "200",
			OrderID:           "ORD-1234-567890",
			TransactionStatus: "settlement",
			FraudStatus:       "accept",
			GrossAmount:       "25000.00",
			Currency:          "IDR",
			PaymentType:       "credit_card",
			SettlementTime:    "2026-08-29 10:00:00",
			TransactionTime:   "2026-08-29 09:59:00",
		},
	})

	verification, err := svc.Verify(context.Background(), "ORD-1234-567890")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if !verification.Success {
		t.Error("settlement with accepted fraud status must be a success")
	}
	if verification.Amount != 2500000 {
		t.Errorf("expected amount in minor units 2500000, got %d", verification.Amount)
	}
	if verification.Reference != "ORD-1234-567890" {
		t.Errorf("unexpected reference %s", verification.Reference)
	}
	if verification.Channel != "credit_card" {
		t.Errorf("unexpected channel %s", verification.Channel)
	}
	if verification.PaidAt != "2026-08-29 10:00:00" {
		t.Errorf("expected settlement time as paid_at, got %s", verification.PaidAt)
	}
}

func TestVerifyPendingIsNotSuccess(t *testing.T) {
	svc := NewPaymentService(&fakeTransactionChecker{
		response: &coreapi.TransactionStatusResponse{
			StatusCode:        "200",
			OrderID:           "ORD-1234-567890",
			TransactionStatus: "pending",
			GrossAmount:       "10000.00",
			TransactionTime:   "2026-08-29 09:59:00",
		},
	})

	verification, err := svc.Verify(context.Background(), "ORD-1234-567890")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if verification.Success {
		t.Error("pending transactions must not verify as success")
	}
	if verification.PaidAt != "2026-08-29 09:59:00" {
		t.Errorf("expected transaction time fallback, got %s", verification.PaidAt)
	}
}

func TestVerifyRejectsFraudChallenge(t *testing.T) {
	svc := NewPaymentService(&fakeTransactionChecker{
		response: &coreapi.TransactionStatusResponse{
			StatusCode:        "200",
			TransactionStatus: "capture",
			FraudStatus:       "challenge",
			GrossAmount:       "10000.00",
		},
	})

	verification, err := svc.Verify(context.Background(), "ORD-1234-567890")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if verification.Success {
		t.Error("challenged captures must not verify as success")
	}
}
