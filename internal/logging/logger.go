package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the service logger. An unknown level falls back to info.
func New(level, environment string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if level != "" {
		var l zapcore.Level
		if err := l.UnmarshalText([]byte(level)); err == nil {
			config.Level = zap.NewAtomicLevelAt(l)
		}
	}
	if environment == "development" {
		config.Development = true
	}

	return config.Build(
		zap.Fields(
			zap.String("service", "curriculo-generator"),
			zap.String("environment", environment),
		),
	)
}

// MaskCPF masks a CPF for logging, keeping the middle block.
func MaskCPF(cpf string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, cpf)
	if len(digits) != 11 {
		return "***.***.***-**"
	}
	return "***." + digits[3:6] + "." + digits[6:9] + "-**"
}

var sensitiveKeys = map[string]bool{
	"cpf": true, "CPF": true, "nationalId": true,
	"rg": true, "RG": true, "identidade": true, "idDocument": true,
	"telefone": true, "celular": true, "phone": true,
	"contatoAlternativo": true, "telefoneAlternativo": true, "alternatePhone": true,
}

// MaskPayload copies a decoded request body with identity and phone values
// masked. Nested "body" objects and arrays are masked as well.
func MaskPayload(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			switch {
			case k == "cpf" || k == "CPF" || k == "nationalId":
				if s, ok := val.(string); ok {
					out[k] = MaskCPF(s)
				} else {
					out[k] = "********"
				}
			case sensitiveKeys[k]:
				out[k] = "********"
			default:
				out[k] = MaskPayload(val)
			}
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = MaskPayload(val)
		}
		return out
	default:
		return v
	}
}
