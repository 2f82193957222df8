package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	valid := map[string]float64{
		"1":        1,
		"0.0001":   0.0001,
		" 12.5 ":   12.5,
		"1000000":  1000000,
		"3.141592": 3.141592,
	}
	for in, want := range valid {
		v, err := ParseAmount(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, v, "input %q", in)
	}

	invalid := []string{"", "  ", "0", "-1", "abc", "1.2.3", "NaN", "Inf", "-Inf", "1e400"}
	for _, in := range invalid {
		_, err := ParseAmount(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestFormatCoin(t *testing.T) {
	assert.Equal(t, "1.5000", FormatCoin(1.5))
	assert.Equal(t, "0.0001", FormatCoin(0.0001))
	assert.Equal(t, "0.0000", FormatCoin(0))
}

func TestNormalizePriority(t *testing.T) {
	for in, want := range map[string]string{
		"":        PriorityMedium,
		"low":     PriorityLow,
		"  HIGH ": PriorityHigh,
		"Medium":  PriorityMedium,
	} {
		got, err := NormalizePriority(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}

	_, err := NormalizePriority("urgent")
	assert.Error(t, err)
}
