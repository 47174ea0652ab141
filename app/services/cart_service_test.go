package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Rakhulsr/go-storefront/app/models"
	"github.com/shopspring/decimal"
)

func testProduct(id, name string, price int64, sizes map[string]int) *models.Product {
	p := &models.Product{
		ID:    id,
		Name:  name,
		Slug:  name,
		Price: decimal.NewFromInt(price),
	}
	for size, stock := range sizes {
		p.Sizes = append(p.Sizes, models.ProductSize{ProductID: id, Size: size, Stock: stock})
	}
	return p
}

func TestCartAddItemMergesSameProductAndSize(t *testing.T) {
	repo := newFakeProductRepo(testProduct("p1", "air-max", 10000, map[string]int{"42": 10}))
	svc := NewCartService(repo, decimal.NewFromInt(5000))
	cart := &models.Cart{}

	if err := svc.AddItem(context.Background(), cart, "p1", "42", 1); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := svc.AddItem(context.Background(), cart, "p1", "42", 2); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if len(cart.Lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(cart.Lines))
	}
	if cart.Lines[0].Qty != 3 {
		t.Errorf("expected merged qty 3, got %d", cart.Lines[0].Qty)
	}
}

func TestCartAddItemKeepsSizesAsSeparateLines(t *testing.T) {
	repo := newFakeProductRepo(testProduct("p1", "air-max", 10000, map[string]int{"41": 5, "42": 5}))
	svc := NewCartService(repo, decimal.Zero)
	cart := &models.Cart{}

	if err := svc.AddItem(context.Background(), cart, "p1", "41", 1); err != nil {
		t.Fatalf("add size 41 failed: %v", err)
	}
	if err := svc.AddItem(context.Background(), cart, "p1", "42", 1); err != nil {
		t.Fatalf("add size 42 failed: %v", err)
	}

	if len(cart.Lines) != 2 {
		t.Fatalf("expected two lines for two sizes, got %d", len(cart.Lines))
	}
}

func TestCartAddItemRejectsOverstockAndBadSize(t *testing.T) {
	repo := newFakeProductRepo(testProduct("p1", "air-max", 10000, map[string]int{"42": 2}))
	svc := NewCartService(repo, decimal.Zero)
	cart := &models.Cart{}

	t.Run("unknown product", func(t *testing.T) {
		if err := svc.AddItem(context.Background(), cart, "nope", "42", 1); !errors.Is(err, ErrProductNotFound) {
			t.Errorf("expected ErrProductNotFound, got %v", err)
		}
	})

	t.Run("size not offered", func(t *testing.T) {
		if err := svc.AddItem(context.Background(), cart, "p1", "45", 1); !errors.Is(err, ErrSizeNotOffered) {
			t.Errorf("expected ErrSizeNotOffered, got %v", err)
		}
	})

	t.Run("merged qty above stock", func(t *testing.T) {
		if err := svc.AddItem(context.Background(), cart, "p1", "42", 2); err != nil {
			t.Fatalf("add within stock failed: %v", err)
		}
		if err := svc.AddItem(context.Background(), cart, "p1", "42", 1); !errors.Is(err, ErrInsufficientStock) {
			t.Errorf("expected ErrInsufficientStock, got %v", err)
		}
	})
}

func TestReconcileDropsVanishedProducts(t *testing.T) {
	repo := newFakeProductRepo(testProduct("p1", "air-max", 10000, map[string]int{"42": 5}))
	svc := NewCartService(repo, decimal.Zero)

	cart := &models.Cart{Lines: []models.CartLine{
		{ProductID: "p1", Size: "42", Qty: 1, Price: decimal.NewFromInt(10000)},
		{ProductID: "gone", Size: "40", Qty: 2, Price: decimal.NewFromInt(9000)},
	}}

	notices, err := svc.Reconcile(context.Background(), cart)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if len(notices) != 0 {
		t.Errorf("expected no clamp notices, got %v", notices)
	}
	if len(cart.Lines) != 1 || cart.Lines[0].ProductID != "p1" {
		t.Fatalf("expected only the live product to survive, got %+v", cart.Lines)
	}
}

func TestReconcileClampsQtyWithOneNotice(t *testing.T) {
	repo := newFakeProductRepo(testProduct("p1", "air-max", 10000, map[string]int{"42": 3}))
	svc := NewCartService(repo, decimal.Zero)

	cart := &models.Cart{Lines: []models.CartLine{
		{ProductID: "p1", Size: "42", Qty: 10},
	}}

	notices, err := svc.Reconcile(context.Background(), cart)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if len(notices) != 1 {
		t.Fatalf("expected exactly one notice per clamped line, got %d: %v", len(notices), notices)
	}
	if cart.Lines[0].Qty != 3 {
		t.Errorf("expected qty clamped to 3, got %d", cart.Lines[0].Qty)
	}
}

func TestReconcileDropsLinesClampedToZero(t *testing.T) {
	repo := newFakeProductRepo(testProduct("p1", "air-max", 10000, map[string]int{"42": 0}))
	svc := NewCartService(repo, decimal.Zero)

	cart := &models.Cart{Lines: []models.CartLine{
		{ProductID: "p1", Size: "42", Qty: 2},
	}}

	notices, err := svc.Reconcile(context.Background(), cart)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if len(notices) != 1 {
		t.Fatalf("expected a notice for the clamp, got %v", notices)
	}
	if len(cart.Lines) != 0 {
		t.Errorf("expected out-of-stock line to be dropped, got %+v", cart.Lines)
	}
}

func TestReconcileLeavesCartUntouchedOnLookupFailure(t *testing.T) {
	repo := newFakeProductRepo()
	repo.err = errors.New("connection refused")
	svc := NewCartService(repo, decimal.Zero)

	cart := &models.Cart{Lines: []models.CartLine{
		{ProductID: "p1", Size: "42", Qty: 2},
	}}

	if _, err := svc.Reconcile(context.Background(), cart); err == nil {
		t.Fatal("expected an error when the live lookup fails")
	}
	if len(cart.Lines) != 1 || cart.Lines[0].Qty != 2 {
		t.Errorf("cart must be left untouched on failure, got %+v", cart.Lines)
	}
}

func TestTotals(t *testing.T) {
	repo := newFakeProductRepo(testProduct("p1", "air-max", 10000, map[string]int{"42": 5}))
	svc := NewCartService(repo, decimal.NewFromInt(5000))

	t.Run("empty cart ships for free", func(t *testing.T) {
		subtotal, shipping, grandTotal := svc.Totals(&models.Cart{})
		if !subtotal.IsZero() || !shipping.IsZero() || !grandTotal.IsZero() {
			t.Errorf("expected all-zero totals, got %s / %s / %s", subtotal, shipping, grandTotal)
		}
	})

	t.Run("no shipping configured", func(t *testing.T) {
		freeShipping := NewCartService(repo, decimal.Zero)
		cart := &models.Cart{}
		if err := freeShipping.AddItem(context.Background(), cart, "p1", "42", 2); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		subtotal, _, grandTotal := freeShipping.Totals(cart)
		if !subtotal.Equal(decimal.NewFromInt(20000)) || !grandTotal.Equal(decimal.NewFromInt(20000)) {
			t.Errorf("expected 20000/20000, got %s/%s", subtotal, grandTotal)
		}
	})

	t.Run("line totals multiply price by qty", func(t *testing.T) {
		cart := &models.Cart{}
		if err := svc.AddItem(context.Background(), cart, "p1", "42", 2); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		subtotal, shipping, grandTotal := svc.Totals(cart)
		if !subtotal.Equal(decimal.NewFromInt(20000)) {
			t.Errorf("expected subtotal 20000, got %s", subtotal)
		}
		if !shipping.Equal(decimal.NewFromInt(5000)) {
			t.Errorf("expected flat shipping 5000, got %s", shipping)
		}
		if !grandTotal.Equal(decimal.NewFromInt(25000)) {
			t.Errorf("expected grand total 25000, got %s", grandTotal)
		}
	})
}
