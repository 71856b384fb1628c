package user

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	ErrInvalidIBAN = errors.New("invalid IBAN")

	ibanShape = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}$`)
)

// NormalizeIBAN strips whitespace and upper-cases the value.
func NormalizeIBAN(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), ""))
}

// ValidateIBAN checks shape and the ISO 13616 mod-97 checksum of a normalized IBAN.
func ValidateIBAN(iban string) error {
	err := validation.Validate(iban,
		validation.Required,
		validation.Match(ibanShape),
		validation.By(checksum),
	)
	if err != nil {
		return ErrInvalidIBAN
	}
	return nil
}

func checksum(value interface{}) error {
	iban, _ := value.(string)
	if len(iban) < 4 {
		return ErrInvalidIBAN
	}
	rearranged := iban[4:] + iban[:4]

	remainder := 0
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			remainder = (remainder*10 + int(r-'0')) % 97
		case r >= 'A' && r <= 'Z':
			v := int(r-'A') + 10
			remainder = (remainder*100 + v) % 97
		default:
			return ErrInvalidIBAN
		}
	}

	if remainder != 1 {
		return ErrInvalidIBAN
	}
	return nil
}
