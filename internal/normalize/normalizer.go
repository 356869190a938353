// Package normalize maps loosely shaped curriculum input onto
// model.ResumeRecord.
package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"curriculo-generator/internal/domain"
	"curriculo-generator/internal/model"
)

// Options toggles the optional checks and rewrites.
type Options struct {
	ValidateEmail      bool
	ValidateNationalID bool
	FormatPhones       bool
}

// DefaultOptions enables every check.
func DefaultOptions() Options {
	return Options{ValidateEmail: true, ValidateNationalID: true, FormatPhones: true}
}

// Normalizer is stateless and safe for concurrent use.
type Normalizer struct {
	opts Options
}

func New(opts Options) *Normalizer {
	return &Normalizer{opts: opts}
}

// NormalizeJSON decodes b and normalizes the result.
func (n *Normalizer) NormalizeJSON(b []byte) (model.ResumeRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return model.ResumeRecord{}, domain.NewValidationError("", "body is not valid JSON")
	}
	return n.Normalize(raw)
}

// Normalize accepts a flat object, an object carrying the payload under
// "body", or an array whose first element is one of those.
func (n *Normalizer) Normalize(raw interface{}) (model.ResumeRecord, error) {
	doc, err := unwrap(raw)
	if err != nil {
		return model.ResumeRecord{}, err
	}
	if err := model.ValidateInput(doc, KnownKeys()); err != nil {
		return model.ResumeRecord{}, asValidationError(err)
	}

	get := func(field string) string {
		for _, f := range fieldAliases {
			if f.field != field {
				continue
			}
			for _, key := range f.aliases {
				if v, ok := doc[key]; ok {
					if s := strings.TrimSpace(stringify(v)); s != "" {
						return s
					}
				}
			}
		}
		return ""
	}

	r := model.ResumeRecord{
		FullName:       get("fullName"),
		NationalID:     get("nationalId"),
		IDDocument:     get("idDocument"),
		BirthDate:      normalizeDate(get("birthDate")),
		Phone:          get("phone"),
		AlternatePhone: get("alternatePhone"),
		Email:          strings.ToLower(get("email")),
		PostalCode:     get("postalCode"),
		Street:         get("street"),
		City:           get("city"),
		State:          strings.ToUpper(get("state")),
		EducationLevel: get("educationLevel"),
		Institution:    get("institution"),
		Availability:   get("availability"),
		WorkExperience: normalizeLineBreaks(get("workExperience")),
		ExtraCourses:   normalizeLineBreaks(get("extraCourses")),
	}
	r.NationalID = padNumericCPF(doc, r.NationalID)

	if n.opts.FormatPhones {
		r.Phone = formatPhone(r.Phone)
		r.AlternatePhone = formatPhone(r.AlternatePhone)
	}

	rules := model.RecordRules{Email: n.opts.ValidateEmail, NationalID: n.opts.ValidateNationalID}
	if err := model.ValidateRecord(r, rules); err != nil {
		return model.ResumeRecord{}, asValidationError(err)
	}
	return r, nil
}

func unwrap(raw interface{}) (map[string]interface{}, error) {
	if arr, ok := raw.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, domain.NewValidationError("", "empty payload array")
		}
		raw = arr[0]
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, domain.NewValidationError("", fmt.Sprintf("payload must be an object, got %T", raw))
	}
	if body, ok := m["body"].(map[string]interface{}); ok {
		return body, nil
	}
	return m, nil
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// padNumericCPF restores leading zeros lost when the CPF arrived as a JSON
// number.
func padNumericCPF(doc map[string]interface{}, cpf string) string {
	if cpf == "" || len(cpf) >= 11 {
		return cpf
	}
	for _, key := range []string{"cpf", "CPF", "nationalId"} {
		switch doc[key].(type) {
		case json.Number, float64, int, int64:
			if _, err := strconv.ParseUint(cpf, 10, 64); err == nil {
				return strings.Repeat("0", 11-len(cpf)) + cpf
			}
			return cpf
		}
	}
	return cpf
}

func normalizeLineBreaks(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func asValidationError(err error) error {
	var fe *model.InputFieldError
	if errors.As(err, &fe) {
		field := fe.Field
		if field == "(root)" {
			field = ""
		}
		return domain.NewValidationError(field, fe.Message)
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return domain.NewInternalError("input validation", err)
}
