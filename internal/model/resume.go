package model

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ResumeRecord is the canonical, normalized shape of one curriculum.
// Every field is trimmed; absent fields are empty strings.
type ResumeRecord struct {
	// identity
	FullName   string `json:"fullName" validate:"required"`
	NationalID string `json:"nationalId"`
	IDDocument string `json:"idDocument"`
	BirthDate  string `json:"birthDate"`

	// contact
	Phone          string `json:"phone"`
	AlternatePhone string `json:"alternatePhone"`
	Email          string `json:"email"`

	// address
	PostalCode string `json:"postalCode"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`

	EducationLevel string `json:"educationLevel"`
	Institution    string `json:"institution"`

	Availability   string `json:"availability"`
	WorkExperience string `json:"workExperience"`
	ExtraCourses   string `json:"extraCourses"`
}

func (r ResumeRecord) HasContact() bool {
	return r.Phone != "" || r.AlternatePhone != "" || r.Email != ""
}

func (r ResumeRecord) HasPersonalIDs() bool {
	return r.NationalID != "" || r.IDDocument != "" || r.BirthDate != ""
}

func (r ResumeRecord) HasAddress() bool {
	return r.PostalCode != "" || r.Street != "" || r.City != "" || r.State != ""
}

func (r ResumeRecord) HasEducation() bool {
	return r.EducationLevel != "" || r.Institution != ""
}

// Skills returns ExtraCourses as a skill list when it is a single line of
// comma separated items. Multi-line text is free text and yields nil.
func (r ResumeRecord) Skills() []string {
	if r.ExtraCourses == "" || strings.Contains(r.ExtraCourses, "\n") || !strings.Contains(r.ExtraCourses, ",") {
		return nil
	}
	var out []string
	for _, s := range strings.Split(r.ExtraCourses, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// FileName is the download name: Curriculo_<name with whitespace as "_">.pdf.
func (r ResumeRecord) FileName() string {
	return "Curriculo_" + strings.Join(strings.Fields(r.FullName), "_") + ".pdf"
}

// ASCIIFileName is FileName with diacritics stripped and any remaining
// non-ASCII or quoting characters replaced, for legacy header parameters.
func (r ResumeRecord) ASCIIFileName() string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, r.FileName())
	if err != nil {
		s = r.FileName()
	}
	return strings.Map(func(c rune) rune {
		if c > unicode.MaxASCII || c < 0x20 || c == '"' || c == '\\' {
			return '_'
		}
		return c
	}, s)
}
