package sessions

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Rakhulsr/go-storefront/app/models"
)

// EncodeCart and DecodeCart are the explicit serialize/deserialize boundary
// between the in-memory cart and its cookie representation.

func EncodeCart(cart *models.Cart) (string, error) {
	if cart == nil {
		cart = &models.Cart{}
	}
	payload, err := json.Marshal(cart)
	if err != nil {
		return "", fmt.Errorf("failed to encode cart: %w", err)
	}
	return string(payload), nil
}

func DecodeCart(payload string) (*models.Cart, error) {
	cart := &models.Cart{}
	if payload == "" {
		return cart, nil
	}
	if err := json.Unmarshal([]byte(payload), cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return cart, nil
}

// LoadCart reads the visitor's cart out of the session. A missing or
// unreadable payload yields an empty cart rather than an error; a corrupt
// cookie should not lock a visitor out of the store.
func LoadCart(store SessionStore, r *http.Request) *models.Cart {
	cart, err := DecodeCart(store.GetCartPayload(r))
	if err != nil {
		return &models.Cart{}
	}
	return cart
}

func SaveCart(store SessionStore, w http.ResponseWriter, r *http.Request, cart *models.Cart) error {
	payload, err := EncodeCart(cart)
	if err != nil {
		return err
	}
	return store.SetCartPayload(w, r, payload)
}
