// Package phone builds dial links for service contact numbers.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used to parse numbers written without a country code.
const DefaultRegion = "ET"

// Dialer normalizes numbers for one default region.
type Dialer struct {
	region string
}

// NewDialer returns a Dialer for region. An empty region falls back to DefaultRegion.
func NewDialer(region string) *Dialer {
	if region == "" {
		region = DefaultRegion
	}
	return &Dialer{region: strings.ToUpper(region)}
}

// Normalize formats a number to E.164. If parsing fails, it returns the trimmed input.
func (d *Dialer) Normalize(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, d.region)
	if err != nil {
		return trimmed
	}
	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

// Link returns a tel: URI for input, or "" when there is nothing to dial.
func (d *Dialer) Link(input string) string {
	n := d.Normalize(input)
	if n == "" {
		return ""
	}
	return "tel:" + strings.ReplaceAll(n, " ", "")
}
