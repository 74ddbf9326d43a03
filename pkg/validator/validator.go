package validator

import (
	"log"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/clinickart/backend/pkg/hash"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	phoneNumberRe = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
	pincodeRe     = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	gstinRe       = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)
	ifscRe        = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)

	registerOnce sync.Once
)

const minPasswordLength = 6

func RegisterGinValidator() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			if err := Register(v); err != nil {
				log.Fatalf("register validators failed: %s", err)
			}
		}
	})
}

// Register installs json field naming and the custom tags on v.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validators := map[string]validator.Func{
		"phonenumber":    regexpValidator(phoneNumberRe),
		"pincode":        regexpValidator(pincodeRe),
		"gstin":          regexpValidator(gstinRe),
		"ifsc":           regexpValidator(ifscRe),
		"strongpassword": strongPasswordValidator,
	}
	for tag, fn := range validators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}

	return nil
}

func regexpValidator(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// strongPasswordValidator requires an upper case letter, a lower case letter
// and a digit, within the bcrypt byte limit.
var strongPasswordValidator validator.Func = func(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

func IsStrongPassword(password string) bool {
	if len(password) < minPasswordLength || len(password) > hash.MaxPasswordLength {
		return false
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	return upper && lower && digit
}
