package credentials

import (
	"fmt"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// ValidateRegistration checks a sign-up form before it reaches [Store.Register].
func ValidateRegistration(username, password, confirm string) error {
	if password != confirm {
		return fmt.Errorf("%w: passwords do not match", shared.ErrInvalidInput)
	}

	_, err := models.NewCredential(username, password)
	return err
}
