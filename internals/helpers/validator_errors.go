package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// MapValidationErrors converte validator.ValidationErrors em mapa campo → mensagens
// no formato esperado por JsonValidationError (422).
func MapValidationErrors(err error) map[string][]string {
	out := map[string][]string{}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_geral"] = []string{"entrada inválida"}
		return out
	}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "campo obrigatório"
		case "email":
			msg = "e-mail inválido"
		case "min":
			msg = "mínimo de " + fe.Param() + " caracteres"
		case "max":
			msg = "máximo de " + fe.Param() + " caracteres"
		case "oneof":
			msg = "deve ser um de: " + fe.Param()
		case "uuid":
			msg = "identificador inválido"
		default:
			msg = "formato inválido"
		}
		out[field] = append(out[field], msg)
	}
	return out
}
