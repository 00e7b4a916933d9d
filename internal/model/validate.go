package model

import (
	"errors"
	"strings"

	"github.com/hay-kot/criterio"
)

var errBlank = errors.New("must not be blank")

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errBlank
	}
	return nil
}

// ValidateInput checks that a new task's title and description are both
// non-empty after trimming. Failures are criterio.FieldErrors keyed by
// "title" and "description".
func ValidateInput(title, description string) error {
	return criterio.ValidateStruct(
		criterio.Run("title", title, notBlank),
		criterio.Run("description", description, notBlank),
	)
}
