package sessions

import (
	"testing"

	"github.com/Rakhulsr/go-storefront/app/models"
	"github.com/shopspring/decimal"
)

func TestCartCodecRoundTrip(t *testing.T) {
	cart := &models.Cart{Lines: []models.CartLine{
		{ProductID: "p1", Name: "air-max", Slug: "air-max", Size: "42", Qty: 2, Price: decimal.NewFromInt(10000), Stock: 5},
		{ProductID: "p1", Name: "air-max", Slug: "air-max", Size: "43", Qty: 1, Price: decimal.NewFromInt(10000), Stock: 3},
	}}

	payload, err := EncodeCart(cart)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded, err := DecodeCart(payload)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(decoded.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(decoded.Lines))
	}
	if decoded.Lines[0].Key() != "p1|42" || decoded.Lines[1].Key() != "p1|43" {
		t.Errorf("line keys did not survive: %+v", decoded.Lines)
	}
	if !decoded.Subtotal().Equal(decimal.NewFromInt(30000)) {
		t.Errorf("expected subtotal 30000, got %s", decoded.Subtotal())
	}
}

func TestDecodeCartToleratesMissingPayload(t *testing.T) {
	cart, err := DecodeCart("")
	if err != nil {
		t.Fatalf("empty payload must decode to an empty cart, got %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Errorf("expected an empty cart, got %+v", cart.Lines)
	}
}

func TestDecodeCartRejectsCorruptPayload(t *testing.T) {
	if _, err := DecodeCart("{broken"); err == nil {
		t.Error("expected an error for a corrupt payload")
	}
}

func TestEncodeCartHandlesNil(t *testing.T) {
	payload, err := EncodeCart(nil)
	if err != nil {
		t.Fatalf("encode of nil cart failed: %v", err)
	}
	cart, err := DecodeCart(payload)
	if err != nil || len(cart.Lines) != 0 {
		t.Errorf("nil cart must round-trip to empty, got %+v (%v)", cart, err)
	}
}
