package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCycleBins(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain list", "1 2 3", "1,2,3"},
		{"trailing space", "1 2 3 ", "1,2,3"},
		{"trailing newline", "10 20 30\n", "10,20,30"},
		{"single bin", "42", "42"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseCycleBins(tt.raw))
		})
	}
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{"plain count", "5", 5, false},
		{"trailing newline", "12\n", 12, false},
		{"trailing junk", "7 events", 7, false},
		{"zero", "0", 0, false},
		{"negative", "-3", -3, false},
		{"not a number", "none", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLeadingInt(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFloatPair(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantLeft  float64
		wantRight float64
		wantErr   bool
	}{
		{"plain pair", "3.0,4.5", 3.0, 4.5, false},
		{"integer values", "8,8", 8, 8, false},
		{"trailing newline", "7.25,7.75\n", 7.25, 7.75, false},
		{"single value", "3.0", 0, 0, true},
		{"non-numeric", "left,right", 0, 0, true},
		{"empty", "", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right, err := parseFloatPair(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantLeft, left, 1e-9)
			assert.InDelta(t, tt.wantRight, right, 1e-9)
		})
	}
}

// Parsers are pure: identical raw content always yields identical output.
func TestParsersAreIdempotent(t *testing.T) {
	assert.Equal(t, parseCycleBins("1 2 3 "), parseCycleBins("1 2 3 "))

	first, err1 := parseLeadingInt("5")
	second, err2 := parseLeadingInt("5")
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)

	l1, r1, err1 := parseFloatPair("3.0,4.5")
	l2, r2, err2 := parseFloatPair("3.0,4.5")
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, l1, l2)
	assert.Equal(t, r1, r2)
}
