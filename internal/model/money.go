package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cents is an amount of money in hundredths of a dollar. Bill arithmetic
// is done on Cents so that a balance shown to two decimals can be paid off
// exactly.
type Cents int64

var ErrInvalidAmount = errors.New("invalid amount")

// WholeDollars returns n dollars.
func WholeDollars(n int64) Cents {
	return Cents(n * 100)
}

// ParseCents reads a dollar amount such as "87.04", "1200" or "0.5". At
// most two fraction digits are accepted. Blank input is zero.
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	neg := false
	switch s[0] {
	case '-':
		neg, s = true, s[1:]
	case '+':
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" || !digits(whole) || !digits(frac) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: %q has more than two decimal places", ErrInvalidAmount, s)
	}

	var w, f int64
	if whole != "" {
		var err error
		if w, err = strconv.ParseInt(whole, 10, 64); err != nil || w > (math.MaxInt64-99)/100 {
			return 0, fmt.Errorf("%w: %q is too large", ErrInvalidAmount, s)
		}
	}
	if frac != "" {
		f, _ = strconv.ParseInt((frac + "0")[:2], 10, 64)
	}
	c := Cents(w*100 + f)
	if neg {
		c = -c
	}
	return c, nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String renders c with exactly two decimals, e.g. "87.04".
func (c Cents) String() string {
	sign, v := "", int64(c)
	if v < 0 {
		sign, v = "-", -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Dollars is c as a float, for display only.
func (c Cents) Dollars() float64 {
	return float64(c) / 100
}

// UnmarshalParam lets gin bind a form value straight into Cents.
func (c *Cents) UnmarshalParam(param string) error {
	v, err := ParseCents(param)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c *Cents) UnmarshalText(text []byte) error {
	return c.UnmarshalParam(string(text))
}
