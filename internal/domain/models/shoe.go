package models

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrEmptyField indicates a required text field was blank after trimming.
var ErrEmptyField = errors.New("field must not be empty")

// ErrInvalidCost indicates the cost could not be parsed or was negative.
var ErrInvalidCost = errors.New("cost must be a non-negative number")

// ErrInvalidQuantity indicates the quantity could not be parsed or was negative.
var ErrInvalidQuantity = errors.New("quantity must be a non-negative whole number")

// Shoe is a single inventory entry. Identity fields and cost are fixed after
// construction; only the quantity changes, through a restock.
type Shoe struct {
	Country  string
	Code     string
	Product  string
	Cost     decimal.Decimal
	Quantity int
}

// NewShoe builds a Shoe from raw text fields, trimming the text fields and
// validating the numeric ones. On failure no Shoe is produced.
func NewShoe(country, code, product, cost, quantity string) (Shoe, error) {
	shoe := Shoe{
		Country: strings.TrimSpace(country),
		Code:    strings.TrimSpace(code),
		Product: strings.TrimSpace(product),
	}

	if shoe.Country == "" || shoe.Code == "" || shoe.Product == "" {
		return Shoe{}, ErrEmptyField
	}

	parsedCost, err := ParseCost(cost)
	if err != nil {
		return Shoe{}, err
	}
	shoe.Cost = parsedCost

	parsedQty, err := ParseQuantity(quantity)
	if err != nil {
		return Shoe{}, err
	}
	shoe.Quantity = parsedQty

	return shoe, nil
}

// ParseCost converts raw text into a non-negative decimal cost.
func ParseCost(raw string) (decimal.Decimal, error) {
	cost, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || cost.IsNegative() {
		return decimal.Decimal{}, ErrInvalidCost
	}
	return cost, nil
}

// ParseQuantity converts raw text into a non-negative integer quantity.
func ParseQuantity(raw string) (int, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || qty < 0 {
		return 0, ErrInvalidQuantity
	}
	return qty, nil
}

// Value is the monetary value of the entry: cost multiplied by quantity.
func (s Shoe) Value() decimal.Decimal {
	return s.Cost.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// MatchesCode reports whether code equals the shoe's code, ignoring case.
func (s Shoe) MatchesCode(code string) bool {
	return strings.EqualFold(s.Code, strings.TrimSpace(code))
}
