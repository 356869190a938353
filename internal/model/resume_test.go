package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		want     string
		ascii    string
	}{
		{"simple", "Jane Doe", "Curriculo_Jane_Doe.pdf", "Curriculo_Jane_Doe.pdf"},
		{"whitespace runs", "Jane   Mary\tDoe", "Curriculo_Jane_Mary_Doe.pdf", "Curriculo_Jane_Mary_Doe.pdf"},
		{"accents", "João Silva", "Curriculo_João_Silva.pdf", "Curriculo_Joao_Silva.pdf"},
		{"quotes", `Ana "Aninha" Lima`, `Curriculo_Ana_"Aninha"_Lima.pdf`, "Curriculo_Ana__Aninha__Lima.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ResumeRecord{FullName: tt.fullName}
			assert.Equal(t, tt.want, r.FileName())
			assert.Equal(t, tt.ascii, r.ASCIIFileName())
		})
	}
}

func TestSkills(t *testing.T) {
	assert.Equal(t, []string{"Go", "SQL", "Excel"}, ResumeRecord{ExtraCourses: "Go, SQL,, Excel "}.Skills())
	assert.Nil(t, ResumeRecord{ExtraCourses: "Excel avançado"}.Skills())
	assert.Nil(t, ResumeRecord{ExtraCourses: "Excel, Word\nInglês básico"}.Skills())
	assert.Nil(t, ResumeRecord{}.Skills())
}

func TestSectionPredicates(t *testing.T) {
	r := ResumeRecord{FullName: "Ana"}
	assert.False(t, r.HasContact())
	assert.False(t, r.HasPersonalIDs())
	assert.False(t, r.HasAddress())
	assert.False(t, r.HasEducation())

	r.AlternatePhone = "1199999"
	r.BirthDate = "1990-05-15"
	r.State = "SP"
	r.Institution = "ETEC"
	assert.True(t, r.HasContact())
	assert.True(t, r.HasPersonalIDs())
	assert.True(t, r.HasAddress())
	assert.True(t, r.HasEducation())
}
