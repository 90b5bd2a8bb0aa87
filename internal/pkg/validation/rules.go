package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// IsEmail reports whether s looks like an email address
func IsEmail(s string) bool {
	return CompiledPatterns.Email.MatchString(s)
}

// RegisterBindings configures gin's validator: field errors are reported
// under their json/form names and the "notblank" tag is available.
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	Configure(v)
	return v.RegisterValidation("notblank", validators.NotBlank)
}

// Configure sets the tag name function on a validator instance
func Configure(v *validator.Validate) {
	v.RegisterTagNameFunc(fieldName)
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}
