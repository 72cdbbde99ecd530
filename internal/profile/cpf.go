package profile

import (
	"fmt"
	"strings"
	"unicode"
)

const cpfDigits = 11

// NormalizeCPF reduces any external CPF input to its canonical storage form:
// exactly 11 digits with all punctuation stripped. The canonical form is the
// only form ever used as a storage key.
func NormalizeCPF(input string) (string, error) {
	var b strings.Builder
	for _, r := range input {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) != cpfDigits {
		return "", fmt.Errorf("CPF must have %d digits, got %d", cpfDigits, len(digits))
	}
	return digits, nil
}

// FormatCPF renders a canonical CPF as ###.###.###-## for display. It is
// presentation only; formatted CPFs are never used as keys. Inputs that are
// not canonical are returned unchanged.
func FormatCPF(cpf string) string {
	if len(cpf) != cpfDigits {
		return cpf
	}
	return fmt.Sprintf("%s.%s.%s-%s", cpf[0:3], cpf[3:6], cpf[6:9], cpf[9:11])
}
