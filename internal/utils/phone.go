package utils

import (
	"strings"

	"github.com/ttacon/libphonenumber"
)

// defaultRegion applies when a number arrives without a country prefix.
const defaultRegion = "IN"

// NormalizePhone parses and formats a phone number to E.164 so look-ups by
// phone always agree regardless of how the caller typed it. Unparseable
// input is returned trimmed rather than rejected; registration-level
// validation decides whether to accept it.
func NormalizePhone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return trimmed
	}

	num, err := libphonenumber.Parse(trimmed, defaultRegion)
	if err != nil {
		return trimmed
	}
	return libphonenumber.Format(num, libphonenumber.E164)
}
