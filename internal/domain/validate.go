package domain

import (
	"net/url"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// HTTPURLTag validates that a string is an absolute http or https URL.
const HTTPURLTag = "httpurl"

var (
	shapeOnce     sync.Once
	shapeValidate *validator.Validate
)

// IsHTTPURL reports whether raw is an absolute http(s) URL with a host.
func IsHTTPURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

func validateHTTPURL(fl validator.FieldLevel) bool {
	return IsHTTPURL(fl.Field().String())
}

// RegisterValidations adds the custom rules to v. It is used for gin's
// binding engine as well as for response validation.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation(HTTPURLTag, validateHTTPURL)
}

// ValidateShape checks the validate tags of a decoded upstream result.
func ValidateShape(v any) error {
	shapeOnce.Do(func() {
		shapeValidate = validator.New(validator.WithRequiredStructEnabled())
		// registration only fails on an empty tag or nil func
		_ = RegisterValidations(shapeValidate)
	})
	return shapeValidate.Struct(v)
}
