package database

import (
	"os"
	"strings"
	"sync"
)

// Em produção as tabelas vivem no schema `escola.`; no ambiente de teste
// (SQLite) os nomes são planos. Todos os TableName() passam por aqui para que
// nenhum call site dependa do layout físico.
var (
	schemaOnce   sync.Once
	schemaPrefix string
)

// SetSchemaPrefix sobrescreve o prefixo (usado pelos testes; "" = sem schema).
func SetSchemaPrefix(p string) {
	schemaOnce.Do(func() {}) // impede o lazy-load de reler o ENV depois
	if p != "" && !strings.HasSuffix(p, ".") {
		p += "."
	}
	schemaPrefix = p
}

// Table resolve o nome lógico para o nome físico.
func Table(name string) string {
	schemaOnce.Do(func() {
		if s := strings.TrimSpace(os.Getenv("DB_SCHEMA")); s != "" {
			schemaPrefix = s + "."
		}
	})
	return schemaPrefix + name
}
