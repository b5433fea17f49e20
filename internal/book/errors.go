package book

import (
	"errors"
	"fmt"

	"github.com/tartampluch/birthday-assistant/internal/config"
)

// Error kinds. Every error returned by this package wraps exactly one of them,
// so callers can branch with errors.Is.
var (
	ErrValidation = errors.New(config.ErrValidation)
	ErrNotFound   = errors.New(config.ErrNotFound)
)

var (
	ErrInvalidPhone    = fmt.Errorf("%w: %s", ErrValidation, config.ErrPhoneFormat)
	ErrInvalidBirthday = fmt.Errorf("%w: %s", ErrValidation, config.ErrBirthdayFormat)
	ErrEmptyName       = fmt.Errorf("%w: %s", ErrValidation, config.ErrNameEmpty)

	ErrContactNotFound = fmt.Errorf("%s %w", config.ErrContactNotFound, ErrNotFound)
	ErrPhoneNotFound   = fmt.Errorf("%s %w", config.ErrPhoneNotFound, ErrNotFound)
)
