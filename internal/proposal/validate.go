package proposal

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// MinAbstractLength is the minimum abstract length in characters, after trimming.
const MinAbstractLength = 50

// ValidationErrors maps a JSON field name to a human-readable message.
// An empty set means the proposal is acceptable.
type ValidationErrors map[string]string

// Valid reports whether no rule failed.
func (v ValidationErrors) Valid() bool { return len(v) == 0 }

// Deliberately loose: local@domain.tld with no whitespace and a single @.
// RE2's \s is ASCII only, so looseemail also rejects any Unicode space.
var looseEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// messages is keyed by JSON field name. Each field carries exactly one rule.
var messages = map[string]string{
	"name":     "Missing name",
	"email":    "Invalid email",
	"title":    "Missing title",
	"abstract": "Abstract too short (>=50 chars)",
	"bio":      "Missing bio",
	"consent":  "Consent required",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "looseemail", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return strings.IndexFunc(s, unicode.IsSpace) < 0 && looseEmail.MatchString(s)
	})
	mustRegister(v, "mintrimmed", func(fl validator.FieldLevel) bool {
		min, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= min
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Validate applies the acceptance rules to p. Optional fields are never
// checked. The same rules back the intake endpoint, the validate-only
// endpoint and the check-proposal command.
func Validate(p SpeakerProposal) ValidationErrors {
	errs := ValidationErrors{}

	err := validate.Struct(p)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Only reachable on programmer error (non-struct input).
		panic(err)
	}

	for _, fe := range fieldErrs {
		field := fe.Field()
		msg, ok := messages[field]
		if !ok {
			msg = "Invalid value"
		}
		errs[field] = msg
	}
	return errs
}
