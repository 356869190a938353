package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
)

// InputFieldError describes why a raw input document was rejected.
type InputFieldError struct {
	Field   string
	Message string
}

func (e *InputFieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateInput checks the raw (already unwrapped) document against a schema
// requiring an object whose known keys hold scalar values.
func ValidateInput(doc interface{}, knownKeys []string) error {
	props := map[string]interface{}{}
	for _, k := range knownKeys {
		props[k] = map[string]interface{}{
			"type": []interface{}{"string", "number", "boolean", "null"},
		}
	}
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}

	res, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("input schema: %w", err)
	}
	if res.Valid() {
		return nil
	}
	// report the first error; the field is "(root)" for shape errors
	first := res.Errors()[0]
	return &InputFieldError{Field: first.Field(), Message: first.Description()}
}

var (
	recordValidator     *validator.Validate
	recordValidatorOnce sync.Once

	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigit     = regexp.MustCompile(`\D`)
)

// getValidator panics if a custom tag fails to register, so a broken setup
// shows at first use rather than as an "undefined validation" panic on a request.
func getValidator() *validator.Validate {
	recordValidatorOnce.Do(func() {
		v := validator.New()
		if err := v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
			return ValidCPF(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("register cpf validation: %v", err))
		}
		if err := v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("register simple_email validation: %v", err))
		}
		recordValidator = v
	})
	return recordValidator
}

// RecordRules selects the optional record checks.
type RecordRules struct {
	Email      bool
	NationalID bool
}

// ValidateRecord applies the record rules. The returned error is an
// *InputFieldError naming the JSON field.
func ValidateRecord(r ResumeRecord, rules RecordRules) error {
	v := getValidator()
	if err := v.Struct(r); err != nil {
		return fieldError(err, "fullName", "is required")
	}
	if rules.Email && r.Email != "" {
		if err := v.Var(r.Email, "simple_email"); err != nil {
			return &InputFieldError{Field: "email", Message: "is not a valid e-mail address"}
		}
	}
	if rules.NationalID && r.NationalID != "" {
		if err := v.Var(r.NationalID, "cpf"); err != nil {
			return &InputFieldError{Field: "nationalId", Message: "is not a valid CPF"}
		}
	}
	return nil
}

func fieldError(err error, fallbackField, fallbackMsg string) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		name := f.Field()
		if name == "FullName" {
			name = "fullName"
		}
		if f.Tag() == "required" {
			return &InputFieldError{Field: name, Message: "is required"}
		}
		return &InputFieldError{Field: name, Message: fmt.Sprintf("failed %s", f.Tag())}
	}
	return &InputFieldError{Field: fallbackField, Message: fallbackMsg}
}

// ValidCPF checks a Brazilian CPF: 11 digits once punctuation is removed,
// not all identical, and both check digits matching.
func ValidCPF(cpf string) bool {
	cpf = nonDigit.ReplaceAllString(cpf, "")
	if len(cpf) != 11 {
		return false
	}
	if strings.Count(cpf, cpf[:1]) == len(cpf) {
		return false
	}

	checkDigit := func(n int) byte {
		sum := 0
		for i := 0; i < n; i++ {
			sum += int(cpf[i]-'0') * (n + 1 - i)
		}
		rem := sum % 11
		if rem < 2 {
			return '0'
		}
		return byte('0' + 11 - rem)
	}

	return cpf[9] == checkDigit(9) && cpf[10] == checkDigit(10)
}
