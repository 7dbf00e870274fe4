package phone

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidInput = errors.New("invalid input")

// Number is a phone number as entered by a user, optionally with a separately
// supplied country code. The canonical forms are derived on every read, so
// both inputs can be changed after construction.
//
// The zero value is an empty number; reads on it return empty strings.
type Number struct {
	raw  string // digits only, empty until SetValue succeeds
	code string // digits only, empty means "infer from raw"
}

// New builds a Number from a free-form string such as "+60 12-345 6789".
func New(value string) (*Number, error) {
	n := &Number{}
	if err := n.SetValue(value); err != nil {
		return nil, err
	}
	return n, nil
}

// NewWithCountryCode builds a Number whose country code is given separately.
// An empty code behaves like New.
func NewWithCountryCode(value, countryCode string) (*Number, error) {
	n, err := New(value)
	if err != nil {
		return nil, err
	}
	n.SetCountryCode(countryCode)
	return n, nil
}

// SetValue replaces the raw number. Everything except digits is dropped,
// including a leading '+'.
func (n *Number) SetValue(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: phone number cannot be empty", ErrInvalidInput)
	}

	digits := digitsOnly(value)
	if digits == "" {
		return fmt.Errorf("%w: invalid phone number %s", ErrInvalidInput, value)
	}

	n.raw = digits
	return nil
}

// SetCountryCode overrides country code detection. Blank input, or input with
// no digits at all such as "+", is ignored and keeps whatever was set before;
// it never becomes an empty explicit code that would yield "+" + raw.
func (n *Number) SetCountryCode(code string) {
	if strings.TrimSpace(code) == "" {
		return
	}
	if digits := digitsOnly(code); digits != "" {
		n.code = digits
	}
}

// Raw returns the stored digits without any prefix handling.
func (n *Number) Raw() string { return n.raw }

// CountryCode returns the effective dialing code. An explicitly set code is
// returned as is; otherwise it is detected from the raw number.
func (n *Number) CountryCode() (string, bool) {
	if n.code != "" {
		return n.code, true
	}
	if n.raw == "" {
		return "", false
	}
	if code, ok := LookupCode(n.raw); ok {
		return code, true
	}
	if ok, _ := IsDomesticPrefixNumber(n.raw); ok {
		return DomesticPrefixCode, true
	}
	return "", false
}

// NumberOnly returns the subscriber number with the country code and any
// Malaysian "0"/"60" prefix removed, e.g. "600123456789" -> "123456789".
func (n *Number) NumberOnly() string {
	digits := n.stripCountryCode()

	// a second pass unwinds "60" + "0" and "60" + "60" combinations
	_, prefixLen := IsDomesticPrefixNumber(digits)
	return digits[prefixLen:]
}

func (n *Number) stripCountryCode() string {
	value := n.raw

	if n.code != "" {
		if strings.HasPrefix(value, n.code) {
			return value[len(n.code):]
		}
		if ok, prefixLen := IsDomesticPrefixNumber(value); ok {
			return value[prefixLen:]
		}
		// explicit code that doesn't match: raw is already local
		return value
	}

	if code, ok := LookupCode(value); ok {
		return value[len(code):]
	}
	if ok, prefixLen := IsDomesticPrefixNumber(value); ok {
		return value[prefixLen:]
	}
	return value
}

// FullNumber returns "+<code><local>". When no code can be determined the
// raw digits are returned unchanged, without '+'.
func (n *Number) FullNumber() string {
	if n.raw == "" {
		return ""
	}
	code, ok := n.CountryCode()
	if !ok {
		return n.raw
	}

	// 012ddddddd -> +6012ddddddd, whatever the explicit code says
	if domestic, _ := IsDomesticPrefixNumber(n.raw); domestic {
		return "+" + DomesticPrefixCode + n.NumberOnly()
	}
	return "+" + code + n.NumberOnly()
}

// Key is the canonical form used for equality; use it as a map key.
func (n *Number) Key() string {
	if n == nil {
		return ""
	}
	return n.FullNumber()
}

func (n *Number) String() string { return n.Key() }

// Equal is a nil-safe comparison of canonical forms.
func (n *Number) Equal(other *Number) bool { return Equal(n, other) }

// Equal reports whether a and b denote the same number. Two nil numbers are
// equal; nil is never equal to a non-nil number.
func Equal(a, b *Number) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	return a.FullNumber() == b.FullNumber()
}

func digitsOnly(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
