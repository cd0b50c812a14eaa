package validators

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/opencircle/social-datastore/internal/apperror"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a request struct against its validate tags and maps the
// first failure onto the store's error taxonomy.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperror.ValidationFailed(fe.Field(), fe.Error())
	}
	return apperror.ValidationFailed("", err.Error())
}
