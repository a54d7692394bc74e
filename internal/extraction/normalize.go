package extraction

import (
	"math"
	"strconv"
	"strings"
)

var wordNumbers = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// ParseQuantity maps one..ten and base-10 digits to a count. Anything else,
// including zero and negatives, is unknown.
func ParseQuantity(raw string) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if n, ok := wordNumbers[s]; ok {
		return n, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// NormalizeContactID strips separators and accepts 6 to 20 digits.
func NormalizeContactID(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '+', r == '\t':
		default:
			return "", false
		}
	}
	digits := b.String()
	if len(digits) < 6 || len(digits) > 20 {
		return "", false
	}
	return digits, true
}

var genreAliases = map[string]string{
	"nonfiction":      "non-fiction",
	"non fiction":     "non-fiction",
	"science fiction": "sci-fi",
	"science-fiction": "sci-fi",
	"scifi":           "sci-fi",
	"sci fi":          "sci-fi",
	"self help":       "self-help",
	"young adult":     "young-adult",
	"children's":      "children",
	"kids":            "children",
}

// NormalizeGenre lower-cases a genre mention and folds spelling variants into
// the closed vocabulary.
func NormalizeGenre(raw string) string {
	g := canonical(raw)
	if alias, ok := genreAliases[g]; ok {
		return alias
	}
	return g
}

func NormalizePayment(raw string) string {
	return canonical(raw)
}

// CleanText trims surrounding whitespace and keeps the captured casing.
func CleanText(raw string) string {
	return strings.TrimSpace(raw)
}

// Total is quantity*unitPrice rounded to cents, or nil when either is unknown.
func Total(quantity *int, unitPrice float64) *float64 {
	if quantity == nil || unitPrice <= 0 {
		return nil
	}
	t := math.Round(float64(*quantity)*unitPrice*100) / 100
	return &t
}

func canonical(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}
