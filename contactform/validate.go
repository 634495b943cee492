package contactform

import (
	"regexp"
	"strings"
)

// Message keys looked up through the Translator.
const (
	KeyNameRequired    = "Contact.nameRequired"
	KeyEmailRequired   = "Contact.emailRequired"
	KeyEmailInvalid    = "Contact.emailInvalid"
	KeyMessageRequired = "Contact.messageRequired"
	KeyGenericError    = "Contact.errorGeneric"
)

// emailPattern is a permissive single-@ shape check: local@domain.tld, where
// no part contains whitespace or another @.
var emailPattern = regexp.MustCompile(`^[^\s\x{000B}\p{Z}\x{FEFF}@]+@[^\s\x{000B}\p{Z}\x{FEFF}@]+\.[^\s\x{000B}\p{Z}\x{FEFF}@]+$`)

// IsBlank reports whether value is empty after trimming whitespace.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// IsEmailShape reports whether value looks like local@domain.tld.
func IsEmailShape(value string) bool {
	return emailPattern.MatchString(value)
}

// ValidateField checks a single field and returns the message key of the
// failure, or "" when the value is acceptable.
func ValidateField(field Field, value string) string {
	switch field {
	case FieldName:
		if IsBlank(value) {
			return KeyNameRequired
		}
	case FieldEmail:
		if IsBlank(value) {
			return KeyEmailRequired
		}
		if !IsEmailShape(value) {
			return KeyEmailInvalid
		}
	case FieldMessage:
		if IsBlank(value) {
			return KeyMessageRequired
		}
	}

	return ""
}

// Validate checks every field of s independently and returns all failures,
// in field order. It returns nil when s is valid.
func Validate(s Submission, text Translator) ValidationErrors {
	var errs ValidationErrors

	for _, field := range Fields {
		key := ValidateField(field, s.Get(field))
		if key == "" {
			continue
		}

		errs = append(errs, &ValidationError{
			Field:   field,
			Key:     key,
			Message: lookup(text, key),
		})
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func lookup(text Translator, key string) string {
	if text == nil {
		return key
	}
	return text.Text(key)
}
