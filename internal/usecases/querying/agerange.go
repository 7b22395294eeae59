package querying

import (
	"strconv"
	"strings"
)

// AgeRange é uma faixa etária inclusiva. Unbounded indica "min+".
type AgeRange struct {
	Min       int
	Max       int
	Unbounded bool
}

// ParseAgeRange interpreta os formatos "min-max", "min+" e idade exata ("30").
// Tokens com limites não numéricos, negativos ou invertidos são rejeitados.
func ParseAgeRange(token string) (AgeRange, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return AgeRange{}, false
	}

	if strings.HasSuffix(token, "+") {
		minAge, ok := parseAge(strings.TrimSuffix(token, "+"))
		if !ok {
			return AgeRange{}, false
		}
		return AgeRange{Min: minAge, Unbounded: true}, true
	}

	if strings.Contains(token, "-") {
		parts := strings.Split(token, "-")
		if len(parts) != 2 {
			return AgeRange{}, false
		}

		minAge, ok := parseAge(parts[0])
		if !ok {
			return AgeRange{}, false
		}
		maxAge, ok := parseAge(parts[1])
		if !ok || maxAge < minAge {
			return AgeRange{}, false
		}
		return AgeRange{Min: minAge, Max: maxAge}, true
	}

	exact, ok := parseAge(token)
	if !ok {
		return AgeRange{}, false
	}
	return AgeRange{Min: exact, Max: exact}, true
}

// Contains informa se a idade está dentro da faixa
func (r AgeRange) Contains(age int) bool {
	if age < r.Min {
		return false
	}
	return r.Unbounded || age <= r.Max
}

func parseAge(s string) (int, bool) {
	age, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || age < 0 {
		return 0, false
	}
	return age, true
}

// ParseAgeRanges converte os tokens válidos e descarta os malformados
func ParseAgeRanges(tokens []string) []AgeRange {
	ranges := make([]AgeRange, 0, len(tokens))
	for _, token := range tokens {
		if r, ok := ParseAgeRange(token); ok {
			ranges = append(ranges, r)
		}
	}
	return ranges
}
