package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrItemNotFound = errors.New("item not found")
	ErrInvalidKind  = errors.New("invalid item kind")
)

// Kind is the type of a sellable item. Only Product and Service are valid;
// the zero value is rejected everywhere a kind is required.
type Kind struct {
	name string
}

var (
	Product = Kind{name: "product"}
	Service = Kind{name: "service"}
)

// ParseKind maps the wire name of a kind to its value.
func ParseKind(s string) (Kind, error) {
	switch s {
	case Product.name:
		return Product, nil
	case Service.name:
		return Service, nil
	}
	return Kind{}, fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

func (k Kind) String() string {
	return k.name
}

func (k Kind) IsValid() bool {
	return k == Product || k == Service
}

func (k Kind) MarshalJSON() ([]byte, error) {
	if !k.IsValid() {
		return nil, ErrInvalidKind
	}
	return json.Marshal(k.name)
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Item is a product or service. Price is in minor currency units.
type Item struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Kind  Kind   `json:"kind"`
}

// LineItem is a cart item annotated with its tax.
type LineItem struct {
	Item
	Tax decimal.Decimal
}

// Bill is the priced breakdown of a cart.
type Bill struct {
	Items []LineItem
	Total decimal.Decimal
}

type AddToCartRequest struct {
	ItemID int    `json:"itemId"`
	Type   string `json:"type"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type LineItemResponse struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price int64   `json:"price"`
	Kind  Kind    `json:"kind"`
	Tax   float64 `json:"tax"`
}

type TotalResponse struct {
	TotalBill  []LineItemResponse `json:"totalBill"`
	TotalValue float64            `json:"totalValue"`
}
