package extraction

import (
	"regexp"
	"strings"
)

// Title spans end at sentence punctuation, the end of a line, or an author marker.
const titleEnd = `(?:\s+by\s|\s*\bauthor\b|[.,!?;]|$)`

const (
	genreVocab = `non[\s\-]?fiction|science[\s\-]fiction|sci[\s\-]?fi|self[\s\-]help|young[\s\-]adult|` +
		`fiction|mystery|romance|thriller|fantasy|biography|history|business|children(?:'s)?|kids`

	paymentVocab = `credit\s*card|debit\s*card|cash\s*on\s*delivery|net\s*banking|google\s*pay|phone\s*pe|` +
		`online|card|cash|cod|upi|paypal|gpay|phonepe|paytm`

	quantityUnit = `(?:copies|copy|units?|books?|pieces?)`
)

var nameStop = clipAtWords("and", "my", "from", "here", "calling", "speaking", "i", "i'm", "phone", "contact")

var nameChain = Chain{Field: FieldCustomerName, Rules: []Rule{
	{
		Name:    "explicit",
		Pattern: regexp.MustCompile(`(?i)(?:\bcustomer\s*name\s*[:\-]\s*|\bmy\s+name\s+is\s+|\bthis\s+is\s+|\bcall\s+me\s+)([a-z][a-z' \t]{2,40})`),
		Clip:    nameStop,
	},
	{
		Name:    "introduction",
		Pattern: regexp.MustCompile(`(?i:\bi\s+am|\bi'm)\s+([A-Z][a-z'\-]+(?:[ \t]+[A-Z][a-z'\-]+){0,3})`),
	},
	{
		Name:    "greeting",
		Pattern: regexp.MustCompile(`(?i:\b(?:hello|hi|hey|good\s+(?:morning|afternoon|evening)))[,!]?[ \t]+([A-Z][a-z'\-]+(?:[ \t]+[A-Z][a-z'\-]+)*)`),
	},
	{
		Name:    "addressed",
		Pattern: regexp.MustCompile(`(?i)\b(?:speaking\s+with|talking\s+to)\s+([a-z][a-z' \t]{2,40})`),
		Clip:    nameStop,
	},
}}

var contactChain = Chain{Field: FieldCustomerID, Rules: []Rule{
	{
		Name:    "labeled",
		Pattern: regexp.MustCompile(`(?i)\b(?:customer\s+id|contact(?:\s+number)?|phone(?:\s+number)?|mobile(?:\s+number)?|id)\b(?:\s+is)?\s*[:\-]?\s*(\+?\d{2,}(?:[\- ]\d{2,})*)`),
		Accept: func(raw string) bool {
			_, ok := NormalizeContactID(raw)
			return ok
		},
	},
}}

var titleChain = Chain{Field: FieldBookTitle, Rules: []Rule{
	{Name: "double_quoted", Pattern: regexp.MustCompile(`[“"]([^"“”\n]{2,80})["”]`)},
	{Name: "single_quoted", Pattern: regexp.MustCompile(`‘([^‘’\n]{2,80})’`)},
	{Name: "apostrophe_quoted", Pattern: regexp.MustCompile(`(?m)(?:^|[\s(])'([^'\n]{2,80})'(?:[\s.,!?;:)]|$)`)},
	{
		Name:    "labeled",
		Pattern: regexp.MustCompile(`(?im)\b(?:book\s*(?:is\s+(?:called|titled|named)|is|title|titled|called|named)\b|title\s*(?:is\b|[:\-]))\s*[:\-]?\s*([a-z][^\n]{1,80}?)` + titleEnd),
	},
	{
		Name:    "request",
		Pattern: regexp.MustCompile(`(?im)\b(?:looking\s+for|want\s+(?:the\s+)?book|interested\s+in)\s+([a-z][^\n]{1,80}?)` + titleEnd),
	},
	{
		Name:    "recommendation",
		Pattern: regexp.MustCompile(`(?im)\b(?:recommend|suggest)\s+([a-z][^\n]{1,80}?)` + titleEnd),
	},
	{
		Name:    "suggestion",
		Pattern: regexp.MustCompile(`(?im)\b(?:have\s+you\s+read|what\s+about)\s+([a-z][^\n]{1,80}?)` + titleEnd),
	},
	{
		Name:    "copies_of",
		Pattern: regexp.MustCompile(`(?im)\bcop(?:y|ies)\s+of\s+(?:the\s+book\s+)?([a-z][^\n]{1,80}?)` + titleEnd),
	},
}}

var paymentWord = regexp.MustCompile(`(?i)^(?:` + paymentVocab + `)$`)

var authorChain = Chain{Field: FieldAuthor, Rules: []Rule{
	{
		Name:    "labeled",
		Pattern: regexp.MustCompile(`(?i:\bauthor(?:\s+is)?\s*[:\-]\s*|\bauthor\s+is\s+|\bwritten\s+by\s+|\bby\s+)([A-Z][A-Za-z.'\-]*(?:[ \t]+[A-Z][A-Za-z.'\-]*){0,4})`),
		// "pay by UPI" is a payment, not an author.
		Accept: func(raw string) bool { return !paymentWord.MatchString(strings.TrimSpace(raw)) },
	},
	{
		Name:    "possessive",
		Pattern: regexp.MustCompile(`([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)*)(?:'s|’s)\s+(?i:book|novel|work)s?\b`),
	},
	{
		Name:    "from_author",
		Pattern: regexp.MustCompile(`(?i:\bfrom\s+(?:the\s+)?author)\s+([A-Z][A-Za-z.'\-]*(?:[ \t]+[A-Z][A-Za-z.'\-]*){0,4})`),
	},
}}

var genreChain = Chain{Field: FieldGenre, Rules: []Rule{
	{Name: "labeled", Pattern: regexp.MustCompile(`(?i)\b(?:genre|category)\s*(?:is\s*)?[:\-]?\s*(?:of\s+)?(` + genreVocab + `)\b`)},
	{Name: "qualified", Pattern: regexp.MustCompile(`(?i)\b(` + genreVocab + `)\s+(?:books?|novels?|section|titles?|genre)\b`)},
}}

var quantityChain = Chain{Field: FieldQuantity, Rules: []Rule{
	{Name: "digits_unit", Pattern: regexp.MustCompile(`(?i)\b(\d{1,3})\s*` + quantityUnit + `\b`)},
	{Name: "unit_digits", Pattern: regexp.MustCompile(`(?i)\b(?:quantity|copies|units)\s*(?:is|of)?\s*[:\-]?\s*(\d{1,3})\b`)},
	{Name: "purchase_verb", Pattern: regexp.MustCompile(`(?i)\b(?:buy|purchase|get|order|need|want|take)\s+(\d{1,3})\b`)},
	{Name: "spelled", Pattern: regexp.MustCompile(`(?i)\b(one|two|three|four|five|six|seven|eight|nine|ten)\s+(?:copies|copy|books?|units?)\b`)},
}}

var paymentChain = Chain{Field: FieldPaymentMethod, Rules: []Rule{
	{
		Name:    "labeled",
		Pattern: regexp.MustCompile(`(?i)(?:\bpayment\s*(?:method|option|mode)?\s*(?:is\s*|will\s+be\s*)?[:\-]?\s*|\bpay\s*(?:by|with|using|via|through|in)\s+|\bpaying\s*(?:by|with|via|in)\s+)(` + paymentVocab + `)\b`),
	},
	{
		Name:    "mention",
		Pattern: regexp.MustCompile(`(?i)\b(credit\s*card|debit\s*card|cash\s*on\s*delivery|net\s*banking|netbanking|google\s*pay|cash|cod|upi|paypal|gpay|phonepe|paytm)\b`),
	},
	{
		Name:    "accepted",
		Pattern: regexp.MustCompile(`(?i)\b(?:accept|take)\s+(credit\s*card|debit\s*card|cash|upi|digital\s*payments?|online\s*payments?)\b`),
	},
}}

// Rule names are the delivery option each keyword family selects.
var deliveryChain = Chain{Field: FieldDeliveryOption, Rules: []Rule{
	{Name: "store_pickup", Pattern: regexp.MustCompile(`(?i)\b(?:store\s*pick\s*-?\s*up|pick\s*-?\s*up|pick\s+(?:it|them)\s+up|collect|come\s+and\s+get)\b`)},
	{Name: "home_delivery", Pattern: regexp.MustCompile(`(?i)\b(?:home\s*delivery|deliver(?:ed)?\s+(?:it\s+)?to\s+(?:my\s+)?home|home\s*address|ship\s+(?:it\s+)?to\s+(?:my\s+)?home)`)},
	{Name: "express_delivery", Pattern: regexp.MustCompile(`(?i)\b(?:express|urgent(?:ly)?|quick\s*delivery|same[\s\-]day|fast)\b`)},
}}

var addressChain = Chain{Field: FieldDeliveryAddress, Rules: []Rule{
	{
		Name:    "labeled",
		Pattern: regexp.MustCompile(`(?i)(?:\b(?:my\s+)?address\s*(?:is\b|[:\-])?|\bdeliver\s+(?:it\s+)?to\b|\bship\s+(?:it\s+)?to\b)\s*([^\n]{10,120})`),
	},
	{
		Name:    "residence",
		Pattern: regexp.MustCompile(`(?i)\b(?:live|living|staying)\s+(?:at|in)\s+([^\n]{10,120})`),
	},
}}

var specialChain = Chain{Field: FieldSpecialRequests, Rules: []Rule{
	{
		Name:    "labeled",
		Pattern: regexp.MustCompile(`(?i)(?:\bspecial\s*requests?\s*(?:is\s*)?[:\-]?\s*|\bplease\s+note\s*[:\-]?\s*|\bnote\s*[:\-]\s*|\binstructions?\s*[:\-]?\s*)([^\n]{5,200})`),
	},
	{
		Name:    "continuation",
		Pattern: regexp.MustCompile(`(?i)(?:\balso\b|\badditionally\b|\bby\s+the\s+way\b|\boh\s+and\b)[, \t]*([^\n]{5,200})`),
	},
	{
		Name:    "reminder",
		Pattern: regexp.MustCompile(`(?i)\b(?:make\s+sure|ensure|remember\s+to)\s*([^\n]{5,200})`),
	},
}}
