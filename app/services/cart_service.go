package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-storefront/app/models"
	"github.com/Rakhulsr/go-storefront/app/repositories"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound   = fmt.Errorf("product not found")
	ErrSizeNotOffered    = fmt.Errorf("selected size is not offered")
	ErrInvalidQty        = fmt.Errorf("quantity must be greater than zero")
	ErrInsufficientStock = fmt.Errorf("not enough stock")
)

type CartService struct {
	productRepo  repositories.ProductRepositoryImpl
	shippingCost decimal.Decimal
}

func NewCartService(productRepo repositories.ProductRepositoryImpl, shippingCost decimal.Decimal) *CartService {
	return &CartService{
		productRepo:  productRepo,
		shippingCost: shippingCost,
	}
}

// AddItem merges qty of (productID, size) into the cart. One line per
// (product, size) pair: an existing key gets its quantity incremented.
func (s *CartService) AddItem(ctx context.Context, cart *models.Cart, productID, size string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQty
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil || product == nil {
		return ErrProductNotFound
	}
	if !product.HasSize(size) {
		return ErrSizeNotOffered
	}

	stock := product.StockForSize(size)

	for i := range cart.Lines {
		if cart.Lines[i].ProductID == productID && cart.Lines[i].Size == size {
			if cart.Lines[i].Qty+qty > stock {
				return fmt.Errorf("%w for %s (size %s, available: %d)", ErrInsufficientStock, product.Name, size, stock)
			}
			cart.Lines[i].Qty += qty
			s.refreshLine(&cart.Lines[i], product)
			return nil
		}
	}

	if qty > stock {
		return fmt.Errorf("%w for %s (size %s, available: %d)", ErrInsufficientStock, product.Name, size, stock)
	}

	line := models.CartLine{
		ProductID: productID,
		Size:      size,
		Qty:       qty,
	}
	s.refreshLine(&line, product)
	cart.Lines = append(cart.Lines, line)
	return nil
}

func (s *CartService) UpdateQty(ctx context.Context, cart *models.Cart, productID, size string, qty int) error {
	if qty <= 0 {
		s.RemoveItem(cart, productID, size)
		return nil
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil || product == nil {
		return ErrProductNotFound
	}

	stock := product.StockForSize(size)
	if qty > stock {
		return fmt.Errorf("%w for %s (size %s, available: %d)", ErrInsufficientStock, product.Name, size, stock)
	}

	for i := range cart.Lines {
		if cart.Lines[i].ProductID == productID && cart.Lines[i].Size == size {
			cart.Lines[i].Qty = qty
			s.refreshLine(&cart.Lines[i], product)
			return nil
		}
	}
	return fmt.Errorf("cart line not found")
}

func (s *CartService) RemoveItem(cart *models.Cart, productID, size string) {
	kept := cart.Lines[:0]
	for _, l := range cart.Lines {
		if l.ProductID == productID && l.Size == size {
			continue
		}
		kept = append(kept, l)
	}
	cart.Lines = kept
}

// Reconcile refreshes every cached line against the live catalog: lines whose
// product vanished are dropped, price/name/slug/image/stock are refreshed,
// and quantities exceeding the live stock for the selected size are clamped
// down with one user-facing notice per clamp. When the batch fetch fails the
// cart is left untouched and the error is returned to the caller.
func (s *CartService) Reconcile(ctx context.Context, cart *models.Cart) ([]string, error) {
	if cart == nil || len(cart.Lines) == 0 {
		return nil, nil
	}

	products, err := s.productRepo.GetByIDs(ctx, cart.ProductIDs())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch live products: %w", err)
	}

	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	var notices []string
	kept := cart.Lines[:0]
	for _, line := range cart.Lines {
		product, ok := byID[line.ProductID]
		if !ok {
			// Product no longer exists; the line goes with it.
			continue
		}

		stock := product.StockForSize(line.Size)
		if line.Qty > stock {
			notices = append(notices, fmt.Sprintf("Only %d left of %s (size %s); quantity adjusted.", stock, product.Name, line.Size))
			line.Qty = stock
		}
		if line.Qty <= 0 {
			continue
		}

		s.refreshLine(&line, product)
		kept = append(kept, line)
	}
	cart.Lines = kept

	return notices, nil
}

func (s *CartService) refreshLine(line *models.CartLine, product *models.Product) {
	line.Name = product.Name
	line.Slug = product.Slug
	line.Image = product.ImagePath
	line.Price = product.Price
	line.Stock = product.StockForSize(line.Size)
}

// Totals computes subtotal, shipping and grand total. Shipping is the flat
// configured cost, zero for an empty cart.
func (s *CartService) Totals(cart *models.Cart) (subtotal, shipping, grandTotal decimal.Decimal) {
	subtotal = cart.Subtotal()
	shipping = decimal.Zero
	if len(cart.Lines) > 0 {
		shipping = s.shippingCost
	}
	grandTotal = subtotal.Add(shipping)
	return subtotal, shipping, grandTotal
}
