package book

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/tartampluch/birthday-assistant/internal/config"
)

// validate is shared by all field constructors; validator.Validate caches
// parsed tags and is safe for reuse.
var validate = validator.New()

// Phone is a phone number made of exactly 10 ASCII digits.
// The zero value is not a valid phone; use NewPhone.
type Phone struct {
	value string
}

// NewPhone validates raw and wraps it. No normalization is applied:
// separators, spaces or a leading '+' are rejected.
func NewPhone(raw string) (Phone, error) {
	if err := validate.Var(raw, config.TagPhone); err != nil {
		return Phone{}, fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}
	return Phone{value: raw}, nil
}

// String returns the digits as entered.
func (p Phone) String() string {
	return p.value
}
