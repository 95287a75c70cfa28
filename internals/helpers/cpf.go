package helper

import "strings"

// CanonicalCPF remove tudo que não for dígito ("123.456.789-09" → "12345678909").
// O lookup de login sempre usa a forma canônica.
func CanonicalCPF(raw string) string {
	var b strings.Builder
	b.Grow(11)
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidCPF confere tamanho e dígitos verificadores da forma canônica.
func ValidCPF(cpf string) bool {
	cpf = CanonicalCPF(cpf)
	if len(cpf) != 11 {
		return false
	}
	// sequências repetidas (000..., 111...) são inválidas
	same := true
	for i := 1; i < 11; i++ {
		if cpf[i] != cpf[0] {
			same = false
			break
		}
	}
	if same {
		return false
	}
	for _, n := range []int{9, 10} {
		sum := 0
		for i := 0; i < n; i++ {
			sum += int(cpf[i]-'0') * (n + 1 - i)
		}
		d := (sum * 10) % 11
		if d == 10 {
			d = 0
		}
		if d != int(cpf[n]-'0') {
			return false
		}
	}
	return true
}
