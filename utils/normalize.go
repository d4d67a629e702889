package utils

import (
	"math"
	"strings"
)

// CleanString trims surrounding whitespace.
func CleanString(value string) string {
	return strings.TrimSpace(value)
}

// CleanEmail trims and lower-cases an email address.
func CleanEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// CleanPhone coerces a phone-like value to a trimmed string.
func CleanPhone(value string) string {
	return strings.TrimSpace(value)
}

// CleanIssues trims every tag and drops empties.
func CleanIssues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// FiniteOrNil returns the value when it is a finite number, nil otherwise.
func FiniteOrNil(value *float64) *float64 {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return nil
	}
	return value
}

// NormalizePhoneForWhatsApp strips formatting characters and prefixes the
// default country code when no explicit one is present.
func NormalizePhoneForWhatsApp(value, defaultCountryCode string) string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return ""
	}

	if strings.HasPrefix(cleaned, "+") {
		return cleaned
	}
	return defaultCountryCode + cleaned
}
