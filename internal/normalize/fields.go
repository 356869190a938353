package normalize

// fieldAliases lists, per canonical field, the input keys accepted for it in
// lookup order. Legacy and localized names come first: the web form and the
// workflow integrations send them, and they win over canonical keys.
var fieldAliases = []struct {
	field   string
	aliases []string
}{
	{"fullName", []string{"nome", "nomeCompleto", "nome_completo", "name", "fullName"}},
	{"nationalId", []string{"cpf", "CPF", "nationalId"}},
	{"idDocument", []string{"rg", "RG", "identidade", "idDocument"}},
	{"birthDate", []string{"dataNascimento", "data_nascimento", "nascimento", "birthDate"}},
	{"phone", []string{"telefone", "celular", "phone"}},
	{"alternatePhone", []string{"contatoAlternativo", "contato_alternativo", "telefoneAlternativo", "telefone_alternativo", "telefone2", "alternatePhone"}},
	{"email", []string{"e-mail", "email"}},
	{"postalCode", []string{"cep", "CEP", "postalCode"}},
	{"street", []string{"endereco", "endereço", "rua", "logradouro", "street"}},
	{"city", []string{"cidade", "city"}},
	{"state", []string{"estado", "uf", "UF", "state"}},
	{"educationLevel", []string{"escolaridade", "educationLevel"}},
	{"institution", []string{"instituicao", "instituição", "institution"}},
	{"availability", []string{"disponibilidade", "turno", "availability"}},
	{"workExperience", []string{"experiencia", "experiência", "experienciaProfissional", "experiencias", "workExperience"}},
	{"extraCourses", []string{"cursos", "cursosExtras", "cursos_extras", "extraCourses"}},
}

// KnownKeys returns every accepted input key.
func KnownKeys() []string {
	var keys []string
	for _, f := range fieldAliases {
		keys = append(keys, f.aliases...)
	}
	return keys
}
