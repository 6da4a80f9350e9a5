package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/notezapp/notez/internal/common"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateDraft checks a draft before it is sent to the note service.
func ValidateDraft(d Draft) error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}

// ValidateTag checks a single tag value.
func ValidateTag(tag string) error {
	if err := validate.Var(tag, "required,max=64"); err != nil {
		return fmt.Errorf("%w: invalid tag %q", common.ErrorValidation, tag)
	}
	return nil
}
