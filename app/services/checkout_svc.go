package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/Rakhulsr/go-storefront/app/models"
	"github.com/Rakhulsr/go-storefront/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
	// ErrOrderPersist marks the known partial failure: payment verified but
	// the order row could not be written.
	ErrOrderPersist = errors.New("failed to persist order after payment")
)

// CheckoutForm is what the checkout page collects. PaymentMethod selects the
// bank-transfer or hosted-card path.
type CheckoutForm struct {
	FirstName     string `validate:"required"`
	LastName      string
	Phone         string `validate:"required"`
	Email         string `validate:"required,email"`
	Address       string `validate:"required"`
	Newsletter    bool
	SaveInfo      bool
	PaymentMethod string `validate:"required,oneof=bank card"`
}

// CheckoutSnapshot parks a card checkout in the session between widget
// initiation and the verified finish redirect. Nothing is persisted until
// verification succeeds.
type CheckoutSnapshot struct {
	Cart models.Cart  `json:"cart"`
	Form CheckoutForm `json:"form"`
}

func EncodeCheckoutSnapshot(snapshot *CheckoutSnapshot) (string, error) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to encode checkout snapshot: %w", err)
	}
	return string(payload), nil
}

func DecodeCheckoutSnapshot(payload string) (*CheckoutSnapshot, error) {
	if payload == "" {
		return nil, fmt.Errorf("no checkout snapshot")
	}
	var snapshot CheckoutSnapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode checkout snapshot: %w", err)
	}
	return &snapshot, nil
}

type snapTransactionCreator interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

type CheckoutService struct {
	db          *gorm.DB
	productRepo repositories.ProductRepositoryImpl
	orderRepo   repositories.OrderRepository
	cartSvc     *CartService
	validate    *validator.Validate
	snapClient  snapTransactionCreator
	appURL      string
}

func NewCheckoutService(
	db *gorm.DB,
	productRepo repositories.ProductRepositoryImpl,
	orderRepo repositories.OrderRepository,
	cartSvc *CartService,
	validate *validator.Validate,
	snapClient snapTransactionCreator,
	appURL string,
) *CheckoutService {
	return &CheckoutService{
		db:          db,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		cartSvc:     cartSvc,
		validate:    validate,
		snapClient:  snapClient,
		appURL:      appURL,
	}
}

// GenerateOrderCode builds a human-readable reference: ORD-<last 4 digits of
// epoch millis>-<random 6-digit integer>. It is a display reference, not a
// uniqueness-guaranteed key; the unique index on order_code catches the
// unlikely collision at save time.
func GenerateOrderCode() string {
	millis := time.Now().UnixMilli()
	return fmt.Sprintf("ORD-%04d-%06d", millis%10000, 100000+rand.Intn(900000))
}

// EnsureOrderCode reuses a pending code from the session or issues a new one,
// so repeated checkout-page loads within one uncompleted session see the same
// reference.
func EnsureOrderCode(existing string) string {
	if existing != "" {
		return existing
	}
	return GenerateOrderCode()
}

// ValidateForm returns field-keyed error messages, nil when the form is valid.
func (s *CheckoutService) ValidateForm(form *CheckoutForm) map[string]string {
	if err := s.validate.Struct(form); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatFieldErrors(validationErrors)
		}
		return map[string]string{"form": "Invalid checkout form."}
	}
	return nil
}

func formatFieldErrors(errs validator.ValidationErrors) map[string]string {
	messages := make(map[string]string)
	for _, err := range errs {
		switch err.Tag() {
		case "required":
			messages[err.Field()] = fmt.Sprintf("%s is required.", err.Field())
		case "email":
			messages[err.Field()] = fmt.Sprintf("%s must be a valid email address.", err.Field())
		case "oneof":
			messages[err.Field()] = fmt.Sprintf("%s must be one of: %s.", err.Field(), err.Param())
		default:
			messages[err.Field()] = fmt.Sprintf("%s is invalid.", err.Field())
		}
	}
	return messages
}

// PlaceOrder writes the order, its items and the customer record in one
// transaction, decrementing per-size stock as it goes. paymentMethod is
// "bank" or the verified gateway channel.
func (s *CheckoutService) PlaceOrder(ctx context.Context, cart *models.Cart, form *CheckoutForm, orderCode, paymentMethod, paymentStatus string) (*models.Order, error) {
	if cart == nil || len(cart.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal, shipping, grandTotal := s.cartSvc.Totals(cart)

	order := &models.Order{
		ID:            uuid.New().String(),
		OrderCode:     orderCode,
		OrderDate:     time.Now(),
		Subtotal:      subtotal,
		ShippingCost:  shipping,
		GrandTotal:    grandTotal,
		PaymentMethod: paymentMethod,
		PaymentStatus: paymentStatus,
		PaymentRef:    orderCode,
		Customer: models.OrderCustomer{
			ID:         uuid.New().String(),
			FirstName:  form.FirstName,
			LastName:   form.LastName,
			Email:      form.Email,
			Phone:      form.Phone,
			Address:    form.Address,
			Newsletter: form.Newsletter,
			SaveInfo:   form.SaveInfo,
		},
	}

	for _, line := range cart.Lines {
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ID:          uuid.New().String(),
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Size:        line.Size,
			Qty:         line.Qty,
			Price:       line.Price,
			LineTotal:   line.LineTotal(),
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, line := range cart.Lines {
			if err := s.productRepo.DecrementSizeStock(ctx, tx, line.ProductID, line.Size, line.Qty); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w for %s (size %s)", ErrInsufficientStock, line.Name, line.Size)
				}
				return fmt.Errorf("failed to decrement stock for %s: %w", line.ProductID, err)
			}
		}
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to create order %s: %w", orderCode, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("CheckoutService.PlaceOrder: order %s placed (%s, %s)", order.OrderCode, paymentMethod, paymentStatus)
	return order, nil
}

// InitiateCardPayment creates a hosted-widget transaction for the pending
// order code and returns the redirect URL. The amount is in minor currency
// units: major-unit grand total multiplied by 100.
func (s *CheckoutService) InitiateCardPayment(ctx context.Context, cart *models.Cart, form *CheckoutForm, orderCode string) (string, error) {
	if cart == nil || len(cart.Lines) == 0 {
		return "", ErrEmptyCart
	}

	_, shipping, grandTotal := s.cartSvc.Totals(cart)
	minorUnits := func(d decimal.Decimal) int64 {
		return d.Mul(decimal.NewFromInt(100)).IntPart()
	}

	var items []midtrans.ItemDetails
	for _, line := range cart.Lines {
		items = append(items, midtrans.ItemDetails{
			ID:    line.ProductID,
			Name:  fmt.Sprintf("%s (size %s)", line.Name, line.Size),
			Price: minorUnits(line.Price),
			Qty:   int32(line.Qty),
		})
	}
	if shipping.GreaterThan(decimal.Zero) {
		items = append(items, midtrans.ItemDetails{
			ID:    "SHIPPING_FEE",
			Name:  "Shipping",
			Price: minorUnits(shipping),
			Qty:   1,
		})
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderCode,
			GrossAmt: minorUnits(grandTotal),
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: form.FirstName,
			LName: form.LastName,
			Email: form.Email,
			Phone: form.Phone,
		},
		Items: &items,
		Callbacks: &snap.Callbacks{
			Finish: fmt.Sprintf("%s/checkout/finish?reference=%s", s.appURL, orderCode),
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	resp, midtransErr := s.snapClient.CreateTransaction(req)
	if midtransErr != nil {
		log.Printf("CheckoutService.InitiateCardPayment: snap transaction failed for %s: %v", orderCode, midtransErr.Message)
		return "", fmt.Errorf("failed to initiate gateway transaction: %w", midtransErr.RawError)
	}

	return resp.RedirectURL, nil
}
