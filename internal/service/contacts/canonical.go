package contacts

import (
	"fmt"
	"strings"

	"github.com/jmehdipour/phone-canon/internal/model"
	"github.com/jmehdipour/phone-canon/internal/phone"
)

// Result is the canonical view of one phone number.
type Result struct {
	Input       string   `json:"input"`
	CountryCode string   `json:"country_code,omitempty"`
	FullNumber  string   `json:"full_number"`
	LocalNumber string   `json:"local_number"`
	Region      string   `json:"region,omitempty"`
	Countries   []string `json:"countries,omitempty"`
}

// Parse builds a phone.Number, falling back to defaultCode when code is blank.
func Parse(raw, code, defaultCode string) (*phone.Number, error) {
	if strings.TrimSpace(code) == "" {
		code = defaultCode
	}
	n, err := phone.NewWithCountryCode(raw, code)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Canonicalize reports the canonical forms of raw and the outcome to record.
// The outcome is OutcomeInvalid whenever err is non-nil.
func Canonicalize(raw, code, defaultCode string) (Result, model.Outcome, error) {
	n, err := Parse(raw, code, defaultCode)
	if err != nil {
		return Result{Input: raw}, model.OutcomeInvalid, err
	}
	return describe(raw, n)
}

// OutcomeOf classifies a successfully parsed number.
func OutcomeOf(n *phone.Number) model.Outcome {
	if _, ok := n.CountryCode(); ok {
		return model.OutcomeOK
	}
	return model.OutcomeUnknownCode
}

func describe(raw string, n *phone.Number) (Result, model.Outcome, error) {
	res := Result{
		Input:       raw,
		FullNumber:  n.FullNumber(),
		LocalNumber: n.NumberOnly(),
	}

	code, ok := n.CountryCode()
	if !ok {
		return res, model.OutcomeUnknownCode, nil
	}
	res.CountryCode = code
	res.Region, _ = phone.Region(code)
	res.Countries = phone.CountryCodes().Countries(code)
	return res, model.OutcomeOK, nil
}

// BuildContact normalizes a raw contact into a row ready to be stored.
func BuildContact(id string, clientID int64, in model.RawContact, defaultCode string) (model.Contact, model.Outcome, error) {
	res, outcome, err := Canonicalize(in.Phone, in.CountryCode, defaultCode)
	if err != nil {
		return model.Contact{}, outcome, fmt.Errorf("%w: %w", ErrInvalidPhone, err)
	}

	return model.Contact{
		ID:          id,
		ClientID:    clientID,
		Name:        strings.TrimSpace(in.Name),
		RawPhone:    strings.TrimSpace(in.Phone),
		CountryCode: res.CountryCode,
		FullNumber:  res.FullNumber,
		LocalNumber: res.LocalNumber,
		Region:      res.Region,
	}, outcome, nil
}
