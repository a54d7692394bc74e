package extraction

import (
	"regexp"
	"strings"
)

// Field names match the JSON keys of models.Order.
type Field string

const (
	FieldCustomerName    Field = "customer_name"
	FieldCustomerID      Field = "customer_id"
	FieldBookTitle       Field = "book_title"
	FieldAuthor          Field = "author"
	FieldGenre           Field = "genre"
	FieldQuantity        Field = "quantity"
	FieldPaymentMethod   Field = "payment_method"
	FieldDeliveryOption  Field = "delivery_option"
	FieldDeliveryAddress Field = "delivery_address"
	FieldSpecialRequests Field = "special_requests"
)

// Rule is one recognizer in a field's fallback chain. Patterns carry at most
// one capturing group; without a group the whole match is the candidate.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp

	// Clip shortens a raw match; Accept rejects it so the next occurrence
	// (and then the next rule) is tried.
	Clip   func(raw string) string
	Accept func(raw string) bool
}

// Candidate is the raw text a rule matched for a field.
type Candidate struct {
	Field Field  `json:"field"`
	Raw   string `json:"raw"`
	Rule  string `json:"rule"`
	Rank  int    `json:"rank"`
}

// Chain is a field's rules in priority order.
type Chain struct {
	Field Field
	Rules []Rule
}

// First returns the candidate of the highest-priority rule that matches text.
// Within a rule the leftmost accepted occurrence wins.
func (c Chain) First(text string) (Candidate, bool) {
	for rank, r := range c.Rules {
		for _, m := range r.Pattern.FindAllStringSubmatch(text, -1) {
			raw := m[0]
			if len(m) > 1 {
				raw = m[1]
			}
			if r.Clip != nil {
				raw = r.Clip(raw)
			}
			if strings.TrimSpace(raw) == "" {
				continue
			}
			if r.Accept != nil && !r.Accept(raw) {
				continue
			}
			return Candidate{Field: c.Field, Raw: raw, Rule: r.Name, Rank: rank}, true
		}
	}
	return Candidate{}, false
}

// clipAtWords cuts s before the first of the given lower-case words.
func clipAtWords(words ...string) func(string) string {
	return func(s string) string {
		fields := strings.Fields(s)
		for i, f := range fields {
			lf := strings.ToLower(f)
			for _, w := range words {
				if lf == w {
					return strings.Join(fields[:i], " ")
				}
			}
		}
		return s
	}
}
