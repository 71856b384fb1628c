package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateIBAN(t *testing.T) {
	tests := []struct {
		iban  string
		valid bool
	}{
		{"DE89370400440532013000", true},
		{"GB82WEST12345698765432", true},
		{"AT611904300234573201", true},
		{"DE89370400440532013001", false},
		{"DE8937040044", false},
		{"89DE370400440532013000", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.iban, func(t *testing.T) {
			err := ValidateIBAN(tt.iban)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidIBAN)
			}
		})
	}
}

func TestNormalizeIBAN(t *testing.T) {
	assert.Equal(t, "DE89370400440532013000", NormalizeIBAN(" de89 3704 0044\t0532 0130 00 "))
	assert.Equal(t, "", NormalizeIBAN("   "))
}
