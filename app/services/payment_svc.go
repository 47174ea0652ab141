package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidArgument is returned when no reference was supplied.
	ErrInvalidArgument = errors.New("payment reference is required")
	// ErrFailedPrecondition is returned when the gateway rejects the
	// verification request (unknown reference, declined lookup).
	ErrFailedPrecondition = errors.New("payment gateway rejected verification")
)

// Verification is the normalized result of a server-side gateway lookup.
// Amount is in minor currency units.
type Verification struct {
	Success   bool   `json:"success"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Reference string `json:"reference"`
	Customer  string `json:"customer,omitempty"`
	PaidAt    string `json:"paid_at"`
	Channel   string `json:"channel"`
}

type transactionChecker interface {
	CheckTransaction(param string) (*coreapi.TransactionStatusResponse, *midtrans.Error)
}

type PaymentService struct {
	checker transactionChecker
}

func NewPaymentService(checker transactionChecker) *PaymentService {
	return &PaymentService{checker: checker}
}

// Verify asks the gateway for the authoritative state of a reference. The
// client-side success callback is never trusted without this call.
func (s *PaymentService) Verify(ctx context.Context, reference string) (*Verification, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, ErrInvalidArgument
	}

	status, midtransErr := s.checker.CheckTransaction(reference)
	if midtransErr != nil {
		log.Printf("PaymentService.Verify: gateway error for reference %s: %v", reference, midtransErr.Message)
		if midtransErr.StatusCode >= 400 && midtransErr.StatusCode < 500 {
			return nil, fmt.Errorf("%w: %s", ErrFailedPrecondition, midtransErr.Message)
		}
		return nil, fmt.Errorf("gateway verification failed for %s: %w", reference, midtransErr.RawError)
	}
	if status == nil {
		return nil, fmt.Errorf("gateway returned no transaction status for %s", reference)
	}
	if status.StatusCode == "404" {
		return nil, fmt.Errorf("%w: reference %s not found", ErrFailedPrecondition, reference)
	}
	if len(status.StatusCode) > 0 && status.StatusCode[0] == '5' {
		return nil, fmt.Errorf("gateway server error %s for reference %s", status.StatusCode, reference)
	}

	amountMinor := int64(0)
	if status.GrossAmount != "" {
		gross, err := decimal.NewFromString(status.GrossAmount)
		if err != nil {
			return nil, fmt.Errorf("unparseable gross amount %q for %s: %w", status.GrossAmount, reference, err)
		}
		amountMinor = gross.Mul(decimal.NewFromInt(100)).IntPart()
	}

	paidAt := status.SettlementTime
	if paidAt == "" {
		paidAt = status.TransactionTime
	}

	success := (status.TransactionStatus == "settlement" || status.TransactionStatus == "capture") &&
		(status.FraudStatus == "" || status.FraudStatus == "accept")

	return &Verification{
		Success:   success,
		Status:    status.TransactionStatus,
		Amount:    amountMinor,
		Currency:  status.Currency,
		Reference: status.OrderID,
		PaidAt:    paidAt,
		Channel:   status.PaymentType,
	}, nil
}
