package normalize

import (
	"testing"

	"curriculo-generator/internal/domain"
	"curriculo-generator/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_RequiredFullName(t *testing.T) {
	n := New(DefaultOptions())

	_, err := n.Normalize(map[string]interface{}{"fullName": "", "email": "x@y.com"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "fullName", ve.Field)

	_, err = n.Normalize(map[string]interface{}{"fullName": "   "})
	require.ErrorAs(t, err, &ve)

	r, err := n.Normalize(map[string]interface{}{"fullName": "  Jane Doe  "})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", r.FullName)
	assert.Equal(t, model.ResumeRecord{FullName: "Jane Doe"}, r)
}

func TestNormalize_LegacyEmailKey(t *testing.T) {
	n := New(DefaultOptions())

	a, err := n.Normalize(map[string]interface{}{"nome": "Ana", "e-mail": "ana@x.com"})
	require.NoError(t, err)
	b, err := n.Normalize(map[string]interface{}{"nome": "Ana", "email": "ana@x.com"})
	require.NoError(t, err)

	assert.Equal(t, "ana@x.com", a.Email)
	assert.Equal(t, "ana@x.com", b.Email)
	assert.Equal(t, "Ana", a.FullName)
}

func TestNormalize_AliasPrecedence(t *testing.T) {
	n := New(Options{})

	r, err := n.Normalize(map[string]interface{}{
		"nome":                "Ana",
		"e-mail":              "legacy@x.com",
		"email":               "canonical@x.com",
		"contatoAlternativo":  "contato",
		"telefoneAlternativo": "telefone",
		"alternatePhone":      "alternate",
	})
	require.NoError(t, err)
	assert.Equal(t, "legacy@x.com", r.Email)
	assert.Equal(t, "contato", r.AlternatePhone)

	// blank legacy values fall through to the next alias
	r, err = n.Normalize(map[string]interface{}{
		"nome":               "Ana",
		"e-mail":             "  ",
		"email":              "canonical@x.com",
		"contatoAlternativo": "",
		"alternatePhone":     "alternate",
	})
	require.NoError(t, err)
	assert.Equal(t, "canonical@x.com", r.Email)
	assert.Equal(t, "alternate", r.AlternatePhone)
}

func TestNormalize_Shapes(t *testing.T) {
	n := New(DefaultOptions())
	flat := map[string]interface{}{"nome": "Ana"}

	tests := []struct {
		name string
		raw  interface{}
	}{
		{"flat", flat},
		{"body wrapper", map[string]interface{}{"body": flat}},
		{"array", []interface{}{flat}},
		{"array of body wrapper", []interface{}{map[string]interface{}{"body": flat}, "ignored"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := n.Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, "Ana", r.FullName)
		})
	}

	var ve *domain.ValidationError
	_, err := n.Normalize([]interface{}{})
	require.ErrorAs(t, err, &ve)
	_, err = n.Normalize("Ana")
	require.ErrorAs(t, err, &ve)
	_, err = n.Normalize(map[string]interface{}{"nome": []interface{}{"Ana"}})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "nome", ve.Field)
}

func TestNormalize_Dates(t *testing.T) {
	n := New(DefaultOptions())

	tests := []struct {
		in   string
		want string
	}{
		{"15/05/1990", "1990-05-15"},
		{"5/3/1990", "1990-03-05"},
		{"1990-05-15", "1990-05-15"},
		{"1990-05-15T00:00:00.000Z", "1990-05-15"},
		{"1990-05-15T10:30:00", "1990-05-15"},
		{"1990-05-15T23:00:00-03:00", "1990-05-15"},
		{"1990-05-15garbage", ""},
		{"1990-05-15Tnoon", ""},
		{"1990-02-30", ""},
		{"not-a-date", ""},
		{"31/02/1990", ""},
		{"15/05", ""},
		{"aa/bb/cccc", ""},
		{"15/05/90", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, err := n.Normalize(map[string]interface{}{"nome": "Ana", "dataNascimento": tt.in})
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.BirthDate)
		})
	}
}

func TestNormalize_Sanitization(t *testing.T) {
	n := New(Options{})

	r, err := n.Normalize(map[string]interface{}{
		"nome":        " Ana ",
		"email":       " Ana@X.COM ",
		"uf":          " sp ",
		"cidade":      " São Paulo ",
		"experiencia": "Loja A\r\nLoja B\rLoja C",
		"cursos":      "  Excel\nInglês  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", r.FullName)
	assert.Equal(t, "ana@x.com", r.Email)
	assert.Equal(t, "SP", r.State)
	assert.Equal(t, "São Paulo", r.City)
	assert.Equal(t, "Loja A\nLoja B\nLoja C", r.WorkExperience)
	assert.Equal(t, "Excel\nInglês", r.ExtraCourses)
}

func TestNormalize_OptionalValidation(t *testing.T) {
	strict := New(DefaultOptions())
	lenient := New(Options{})

	var ve *domain.ValidationError
	_, err := strict.Normalize(map[string]interface{}{"nome": "Ana", "email": "not-an-email"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Field)

	_, err = strict.Normalize(map[string]interface{}{"nome": "Ana", "cpf": "111.111.111-11"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "nationalId", ve.Field)

	r, err := strict.Normalize(map[string]interface{}{"nome": "Ana", "cpf": "529.982.247-25"})
	require.NoError(t, err)
	assert.Equal(t, "529.982.247-25", r.NationalID)

	_, err = lenient.Normalize(map[string]interface{}{"nome": "Ana", "email": "not-an-email", "cpf": "123"})
	require.NoError(t, err)
}

func TestNormalizeJSON_NumericCPF(t *testing.T) {
	n := New(DefaultOptions())

	r, err := n.NormalizeJSON([]byte(`{"nome":"Ana","cpf":1234567890}`))
	require.NoError(t, err)
	assert.Equal(t, "01234567890", r.NationalID)

	_, err = n.NormalizeJSON([]byte(`{"nome":`))
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestNormalize_Phones(t *testing.T) {
	r, err := New(DefaultOptions()).Normalize(map[string]interface{}{
		"nome":               "Ana",
		"telefone":           "11987654321",
		"contatoAlternativo": "recado com a vizinha",
	})
	require.NoError(t, err)
	assert.Equal(t, "(11) 98765-4321", r.Phone)
	assert.Equal(t, "recado com a vizinha", r.AlternatePhone)

	r, err = New(Options{}).Normalize(map[string]interface{}{"nome": "Ana", "telefone": "11987654321"})
	require.NoError(t, err)
	assert.Equal(t, "11987654321", r.Phone)
}

func TestNormalize_EndToEndRecord(t *testing.T) {
	r, err := New(DefaultOptions()).Normalize(map[string]interface{}{
		"nome":         "João Silva",
		"email":        "joao@x.com",
		"escolaridade": "Ensino Médio",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ResumeRecord{
		FullName:       "João Silva",
		Email:          "joao@x.com",
		EducationLevel: "Ensino Médio",
	}, r)
}
