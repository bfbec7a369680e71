package validators

import "strings"

// OnlyDigits drops every character that is not an ASCII digit.
func OnlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// IsCPF reports whether candidate is a structurally valid CPF. Formatting
// characters ("111.444.777-35") are ignored; anything that does not leave
// exactly 11 digits, or leaves 11 repeated digits, is rejected.
func IsCPF(candidate string) bool {
	cpf := OnlyDigits(candidate)
	if len(cpf) != 11 || strings.Count(cpf, cpf[:1]) == 11 {
		return false
	}

	return cpfCheckDigit(cpf[:9]) == cpf[9] && cpfCheckDigit(cpf[:10]) == cpf[10]
}

// cpfCheckDigit weights digits from len+1 down to 2.
func cpfCheckDigit(digits string) byte {
	sum := 0
	weight := len(digits) + 1
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (weight - i)
	}

	rest := (sum * 10) % 11
	if rest == 10 {
		rest = 0
	}
	return byte('0' + rest)
}
