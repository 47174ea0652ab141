package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/Rakhulsr/go-storefront/app/models"
	"github.com/go-playground/validator/v10"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
)

var orderCodePattern = regexp.MustCompile(`^ORD-\d{4}-\d{6}$`)

func TestGenerateOrderCodeFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := GenerateOrderCode()
		if !orderCodePattern.MatchString(code) {
			t.Fatalf("order code %q does not match ORD-XXXX-XXXXXX", code)
		}
	}
}

func TestEnsureOrderCodeReusesPendingCode(t *testing.T) {
	if got := EnsureOrderCode("ORD-1234-567890"); got != "ORD-1234-567890" {
		t.Errorf("expected the pending code back, got %s", got)
	}
	if got := EnsureOrderCode(""); !orderCodePattern.MatchString(got) {
		t.Errorf("expected a fresh code, got %q", got)
	}
}

func validCheckoutForm() *CheckoutForm {
	return &CheckoutForm{
		FirstName:     "Ayu",
		Phone:         "08123456789",
		Email:         "ayu@example.com",
		Address:       "Jl. Kenanga 12",
		PaymentMethod: "bank",
	}
}

func TestValidateForm(t *testing.T) {
	svc := NewCheckoutService(nil, newFakeProductRepo(), &fakeOrderRepo{}, nil, validator.New(), nil, "http://localhost:8080")

	t.Run("valid form passes", func(t *testing.T) {
		if errs := svc.ValidateForm(validCheckoutForm()); errs != nil {
			t.Errorf("expected no errors, got %v", errs)
		}
	})

	t.Run("invalid email blocks submission", func(t *testing.T) {
		form := validCheckoutForm()
		form.Email = "not-an-email"
		errs := svc.ValidateForm(form)
		if errs == nil {
			t.Fatal("expected validation errors")
		}
		if _, ok := errs["Email"]; !ok {
			t.Errorf("expected an Email error, got %v", errs)
		}
	})

	t.Run("unknown payment method is rejected", func(t *testing.T) {
		form := validCheckoutForm()
		form.PaymentMethod = "cash"
		if errs := svc.ValidateForm(form); errs == nil {
			t.Error("expected validation errors for payment method")
		}
	})

	t.Run("missing required fields are all reported", func(t *testing.T) {
		errs := svc.ValidateForm(&CheckoutForm{})
		for _, field := range []string{"FirstName", "Phone", "Email", "Address", "PaymentMethod"} {
			if _, ok := errs[field]; !ok {
				t.Errorf("expected an error for %s, got %v", field, errs)
			}
		}
	})
}

func TestInitiateCardPaymentSendsMinorUnits(t *testing.T) {
	repo := newFakeProductRepo(testProduct("p1", "air-max", 10000, map[string]int{"42": 5}))
	cartSvc := NewCartService(repo, decimal.NewFromInt(5000))
	creator := &fakeSnapCreator{response: &snap.Response{RedirectURL: "https://pay.example/redirect"}}
	svc := NewCheckoutService(nil, repo, &fakeOrderRepo{}, cartSvc, validator.New(), creator, "http://localhost:8080")

	cart := &models.Cart{}
	if err := cartSvc.AddItem(context.Background(), cart, "p1", "42", 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	redirectURL, err := svc.InitiateCardPayment(context.Background(), cart, validCheckoutForm(), "ORD-1234-567890")
	if err != nil {
		t.Fatalf("initiate failed: %v", err)
	}
	if redirectURL != "https://pay.example/redirect" {
		t.Errorf("unexpected redirect URL %s", redirectURL)
	}

	req := creator.gotReq
	if req == nil {
		t.Fatal("no transaction request was sent")
	}
	if req.TransactionDetails.OrderID != "ORD-1234-567890" {
		t.Errorf("unexpected gateway order id %s", req.TransactionDetails.OrderID)
	}
	// 2 x 10000 + 5000 shipping, in minor units.
	if req.TransactionDetails.GrossAmt != 2500000 {
		t.Errorf("expected gross amount 2500000, got %d", req.TransactionDetails.GrossAmt)
	}
}

func TestInitiateCardPaymentRejectsEmptyCart(t *testing.T) {
	repo := newFakeProductRepo()
	cartSvc := NewCartService(repo, decimal.Zero)
	svc := NewCheckoutService(nil, repo, &fakeOrderRepo{}, cartSvc, validator.New(), &fakeSnapCreator{}, "http://localhost:8080")

	if _, err := svc.InitiateCardPayment(context.Background(), &models.Cart{}, validCheckoutForm(), "ORD-1234-567890"); err != ErrEmptyCart {
		t.Errorf("expected ErrEmptyCart, got %v", err)
	}
}

func TestInitiateCardPaymentSurfacesGatewayError(t *testing.T) {
	repo := newFakeProductRepo(testProduct("p1", "air-max", 10000, map[string]int{"42": 5}))
	cartSvc := NewCartService(repo, decimal.Zero)
	creator := &fakeSnapCreator{err: &midtrans.Error{Message: "denied", StatusCode: 401, RawError: &midtransStubErr{}}}
	svc := NewCheckoutService(nil, repo, &fakeOrderRepo{}, cartSvc, validator.New(), creator, "http://localhost:8080")

	cart := &models.Cart{}
	if err := cartSvc.AddItem(context.Background(), cart, "p1", "42", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if _, err := svc.InitiateCardPayment(context.Background(), cart, validCheckoutForm(), "ORD-1234-567890"); err == nil {
		t.Error("expected the gateway error to surface")
	}
}

type midtransStubErr struct{}

func (midtransStubErr) Error() string { return "denied" }

func TestCheckoutSnapshotRoundTrip(t *testing.T) {
	cart := models.Cart{Lines: []models.CartLine{
		{ProductID: "p1", Name: "air-max", Size: "42", Qty: 2, Price: decimal.NewFromInt(10000)},
	}}
	snapshot := &CheckoutSnapshot{Cart: cart, Form: *validCheckoutForm()}

	payload, err := EncodeCheckoutSnapshot(snapshot)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded, err := DecodeCheckoutSnapshot(payload)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(decoded.Cart.Lines) != 1 || decoded.Cart.Lines[0].Qty != 2 {
		t.Errorf("cart did not survive the round trip: %+v", decoded.Cart)
	}
	if decoded.Form.Email != "ayu@example.com" {
		t.Errorf("form did not survive the round trip: %+v", decoded.Form)
	}
}

func TestDecodeCheckoutSnapshotRejectsGarbage(t *testing.T) {
	for _, payload := range []string{"", "{not json"} {
		if _, err := DecodeCheckoutSnapshot(payload); err == nil {
			t.Errorf("payload %q: expected an error", payload)
		}
	}
}
