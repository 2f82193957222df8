package common

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CoinDecimals is the display precision the ledger itself uses in messages.
const CoinDecimals = 4

// Transaction priorities understood by the ledger's fee estimator.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ParseAmount parses a decimal string amount from the local API into the
// float the ledger wire format uses. Rejects non-positive and non-finite values.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}
	return v, nil
}

// FormatCoin renders a coin amount at the ledger's display precision.
// Example: FormatCoin(1.5) = "1.5000"
func FormatCoin(v float64) string {
	return strconv.FormatFloat(v, 'f', CoinDecimals, 64)
}

// NormalizePriority maps an optional priority string to one the ledger
// accepts, defaulting to medium.
func NormalizePriority(p string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "":
		return PriorityMedium, nil
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("priority must be low, medium or high")
	}
}
