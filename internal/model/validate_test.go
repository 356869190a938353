package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidCPF(t *testing.T) {
	tests := []struct {
		name  string
		cpf   string
		valid bool
	}{
		{"plain", "52998224725", true},
		{"formatted", "529.982.247-25", true},
		{"another", "11144477735", true},
		{"sequence with valid digits", "12345678909", true},
		{"wrong check digit", "12345678900", false},
		{"all zeros", "00000000000", false},
		{"all same", "99999999999", false},
		{"too short", "5299822472", false},
		{"too long", "529982247250", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidCPF(tt.cpf))
		})
	}
}

func TestValidateRecord(t *testing.T) {
	all := RecordRules{Email: true, NationalID: true}

	err := ValidateRecord(ResumeRecord{Email: "x@y.com"}, all)
	var fe *InputFieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "fullName", fe.Field)

	require.NoError(t, ValidateRecord(ResumeRecord{FullName: "Ana", Email: "ana@x.com", NationalID: "529.982.247-25"}, all))

	err = ValidateRecord(ResumeRecord{FullName: "Ana", Email: "ana-at-x"}, all)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "email", fe.Field)

	err = ValidateRecord(ResumeRecord{FullName: "Ana", NationalID: "11111111111"}, all)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "nationalId", fe.Field)

	// rules disabled
	require.NoError(t, ValidateRecord(ResumeRecord{FullName: "Ana", Email: "ana-at-x", NationalID: "123"}, RecordRules{}))
}

func TestValidateInput(t *testing.T) {
	keys := []string{"nome", "email"}

	require.NoError(t, ValidateInput(map[string]interface{}{"nome": "Ana", "email": nil, "extra": map[string]interface{}{}}, keys))
	require.NoError(t, ValidateInput(map[string]interface{}{"nome": float64(12)}, keys))

	err := ValidateInput(map[string]interface{}{"nome": []interface{}{"Ana"}}, keys)
	var fe *InputFieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "nome", fe.Field)

	err = ValidateInput("just a string", keys)
	require.ErrorAs(t, err, &fe)
}

func TestGetValidator_CustomTagsRegistered(t *testing.T) {
	var v interface{ Var(interface{}, string) error }
	require.NotPanics(t, func() { v = getValidator() })

	require.NotPanics(t, func() {
		assert.NoError(t, v.Var("529.982.247-25", "cpf"))
		assert.Error(t, v.Var("529.982.247-26", "cpf"))
		assert.NoError(t, v.Var("ana@example.com", "simple_email"))
		assert.Error(t, v.Var("ana@", "simple_email"))
	})
	assert.Same(t, getValidator(), getValidator())
}
