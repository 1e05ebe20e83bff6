package models

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a non-negative amount kept at two decimal places.
type Money struct {
	decimal.Decimal
}

// MaxMoney is the largest amount quotations.grand_total (NUMERIC(12,2)) can hold.
var MaxMoney = decimal.RequireFromString("9999999999.99")

// leadingNumber mirrors what a browser's parseFloat accepts: the longest numeric prefix.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// ParseMoney coerces free-form input into Money. The numeric prefix is read
// as a float64; anything unparseable, infinite, negative or above MaxMoney
// becomes zero.
func ParseMoney(raw string) Money {
	s := leadingNumber.FindString(strings.TrimSpace(raw))
	if s == "" {
		return Money{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f < 0 {
		return Money{}
	}
	d := decimal.NewFromFloat(f).Round(2)
	if d.GreaterThan(MaxMoney) {
		return Money{}
	}
	return Money{d}
}

// NewMoney builds Money from a decimal string, panicking on bad input. Used for fixtures.
func NewMoney(s string) Money {
	return Money{decimal.RequireFromString(s).Round(2)}
}

func (m Money) String() string {
	return m.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}
