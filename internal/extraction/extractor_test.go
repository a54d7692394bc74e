package extraction

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/bookwise/internal/models"
)

var testNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func testExtractor() *Extractor {
	return New(Config{
		Now:        func() time.Time { return testNow },
		NewOrderID: func(time.Time) string { return "ORD-TEST" },
	})
}

// transcript builds utterances from "C: ..." (customer) and "A: ..." (assistant) lines.
func transcript(lines ...string) []models.Utterance {
	utts := make([]models.Utterance, 0, len(lines))
	for i, l := range lines {
		role := models.RoleCustomer
		if strings.HasPrefix(l, "A: ") {
			role = models.RoleAssistant
		}
		l = strings.TrimPrefix(strings.TrimPrefix(l, "A: "), "C: ")
		utts = append(utts, models.Utterance{
			RoomID:        "room-1",
			Role:          role,
			Text:          l,
			SequenceIndex: int64(i),
			Timestamp:     float64(1000 + i),
		})
	}
	return utts
}

func TestExtract_EmptyTranscript(t *testing.T) {
	order := testExtractor().Extract(nil)

	assert.Empty(t, order.CustomerName)
	assert.Empty(t, order.CustomerID)
	assert.Empty(t, order.BookTitle)
	assert.Empty(t, order.OrderID)
	assert.Empty(t, order.DeliveryAddress)
	assert.Nil(t, order.Quantity)
	assert.Nil(t, order.TotalAmount)
	assert.Equal(t, DefaultUnitPrice, order.UnitPrice)
	assert.Equal(t, models.DeliveryHome, order.DeliveryOption)
	assert.Equal(t, models.OrderPending, order.OrderStatus)
	assert.Equal(t, testNow, order.OrderDate)
	assert.Equal(t, testNow, order.UpdatedAt)
}

func TestExtract_FullConversation(t *testing.T) {
	utts := transcript(
		"A: Hello! Welcome to BookWise. How can I help you today?",
		"C: Hi, my name is Priya Sharma.",
		"A: Nice to meet you. Could you share your phone number?",
		"C: Sure, my phone number is 98765-43210.",
		"A: Which book would you like?",
		`C: I'm looking for "The Midnight Library" by Matt Haig, two copies please.`,
		"A: Great choice, a lovely fiction novel. How would you like to pay?",
		"C: I'll pay by UPI.",
		"A: Should we deliver the book, or will you visit the store?",
		"C: Home delivery please. My address is 221B Baker Street, London.",
		"C: By the way, please gift wrap it.",
	)

	order := testExtractor().Extract(utts)

	assert.Equal(t, "Priya Sharma", order.CustomerName)
	assert.Equal(t, "9876543210", order.CustomerID)
	assert.Equal(t, "The Midnight Library", order.BookTitle)
	assert.Equal(t, "Matt Haig", order.Author)
	assert.Equal(t, "fiction", order.Genre)
	require.NotNil(t, order.Quantity)
	assert.Equal(t, 2, *order.Quantity)
	assert.Equal(t, "upi", order.PaymentMethod)
	assert.Equal(t, models.DeliveryHome, order.DeliveryOption)
	assert.Equal(t, "221B Baker Street, London.", order.DeliveryAddress)
	assert.Equal(t, "please gift wrap it.", order.SpecialRequests)
	require.NotNil(t, order.TotalAmount)
	assert.InDelta(t, 31.98, *order.TotalAmount, 1e-9)
	assert.Equal(t, "ORD-TEST", order.OrderID)

	assert.Equal(t, Readiness{State: StateReady}, Evaluate(order))
	assert.True(t, Notifiable(order))
}

func TestExtract_Deterministic(t *testing.T) {
	utts := transcript(
		"C: My name is Ana, my id is 5550001234.",
		`C: I want "Circe" please, 3 copies.`,
	)
	ex := testExtractor()
	assert.Equal(t, ex.Extract(utts), ex.Extract(utts))

	// Reordering the input does not change the result.
	reversed := []models.Utterance{utts[1], utts[0]}
	assert.Equal(t, ex.Extract(utts), ex.Extract(reversed))
}

func TestExtract_GeneratedOrderID(t *testing.T) {
	utts := transcript(`C: contact: 5550001234. I'd like "Dune".`)
	order := New(DefaultConfig()).Extract(utts)

	assert.Regexp(t, regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{8}$`), order.OrderID)
}

func TestExtract_OrderIDGate(t *testing.T) {
	base := []string{
		"C: My name is Ana.",
		"C: I want the book called Circe. Two copies.",
	}

	tests := []struct {
		name   string
		extra  string
		wantID string
	}{
		{name: "no contact", extra: "C: That's all.", wantID: ""},
		{name: "contact too short", extra: "C: my id is 12345", wantID: ""},
		{name: "contact present", extra: "C: my id is 123456", wantID: "ORD-TEST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := testExtractor().Extract(transcript(append(base, tt.extra)...))
			assert.Equal(t, "Circe", order.BookTitle)
			assert.Equal(t, tt.wantID, order.OrderID)
		})
	}
}

func TestExtract_TitleRulePriority(t *testing.T) {
	utts := transcript(
		"C: The book is Dune.",
		`C: Actually, make it "Project Hail Mary".`,
	)
	order, cands := testExtractor().Explain(utts)

	assert.Equal(t, "Project Hail Mary", order.BookTitle)

	var title *Candidate
	for i := range cands {
		if cands[i].Field == FieldBookTitle {
			title = &cands[i]
		}
	}
	require.NotNil(t, title)
	assert.Equal(t, "double_quoted", title.Rule)
	assert.Equal(t, 0, title.Rank)
}

func TestExtract_Title(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "I'd like 'Atomic Habits' please", want: "Atomic Habits"},
		{text: "I want ‘Circe’ today", want: "Circe"},
		{text: "The book is Dune.", want: "Dune"},
		{text: "The book is called Dune.", want: "Dune"},
		{text: "the book is titled Project Hail Mary", want: "Project Hail Mary"},
		{text: "Do you have the book called The Hobbit by Tolkien", want: "The Hobbit"},
		{text: "I'd like three copies of Dune", want: "Dune"},
		{text: "Nothing in particular", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			order := testExtractor().Extract(transcript("C: " + tt.text))
			assert.Equal(t, tt.want, order.BookTitle)
		})
	}
}

func TestExtract_CustomerName(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "customer name: Ravi Kumar", want: "Ravi Kumar"},
		{text: "My name is Sam and my number is 12345678", want: "Sam"},
		{text: "This is Maria Lopez calling about an order", want: "Maria Lopez"},
		{text: "hi, this is priya sharma", want: "priya sharma"},
		{text: "Good morning Alice, welcome back", want: "Alice"},
		{text: "You're speaking with Priya.", want: "Priya"},
		{text: "hello there", want: ""},
		// Known false positive of the greeting rule.
		{text: "Hi, Harry Potter is my favourite series", want: "Harry Potter"},
		{text: "Hi Anna, my name is Ravi", want: "Ravi"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			order := testExtractor().Extract(transcript("C: " + tt.text))
			assert.Equal(t, tt.want, order.CustomerName)
		})
	}
}

func TestExtract_CustomerID(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "contact: 98765 43210", want: "9876543210"},
		{text: "my mobile number is +91 98765 43210", want: "919876543210"},
		{text: "call 9876543210", want: ""},
		{text: "ID: 1234567890123456789012", want: ""},
		{text: "my phone number is 9876543210 2 copies please", want: "9876543210"},
		{text: "phone: 98765-43210, and 3 copies of Dune", want: "9876543210"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			order := testExtractor().Extract(transcript("C: " + tt.text))
			assert.Equal(t, tt.want, order.CustomerID)
		})
	}
}

func TestExtract_Author(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "Dune by Frank Herbert", want: "Frank Herbert"},
		{text: "I'll pay by UPI, and the one by Neil Gaiman", want: "Neil Gaiman"},
		{text: "I love Agatha Christie's novels", want: "Agatha Christie"},
		{text: "something from author Jane Austen", want: "Jane Austen"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			order := testExtractor().Extract(transcript("C: " + tt.text))
			assert.Equal(t, tt.want, order.Author)
		})
	}
}

func TestExtract_Genre(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "genre: Science Fiction", want: "sci-fi"},
		{text: "any good mystery novels?", want: "mystery"},
		{text: "Non-Fiction books", want: "non-fiction"},
		{text: "I like poetry books", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			order := testExtractor().Extract(transcript("C: " + tt.text))
			assert.Equal(t, tt.want, order.Genre)
		})
	}
}

func TestExtract_Quantity(t *testing.T) {
	tests := []struct {
		text string
		want int // 0 means unknown
	}{
		{text: "I'd like three copies of Dune", want: 3},
		{text: "quantity: 4", want: 4},
		{text: "I want to buy 5", want: 5},
		{text: "3 copies of Dune and five books", want: 3},
		{text: "ten copies", want: 10},
		{text: "0 copies", want: 0},
		{text: "I want 1984 by George Orwell", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			order := testExtractor().Extract(transcript("C: " + tt.text))
			if tt.want == 0 {
				assert.Nil(t, order.Quantity)
				assert.Nil(t, order.TotalAmount)
				return
			}
			require.NotNil(t, order.Quantity)
			assert.Equal(t, tt.want, *order.Quantity)
		})
	}
}

func TestExtract_PaymentMethod(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "payment method: Cash on Delivery", want: "cash on delivery"},
		{text: "I'll pay with credit  card", want: "credit card"},
		{text: "cod is fine", want: "cod"},
		{text: "We accept digital payments", want: "digital payments"},
		{text: "I'd prefer bitcoin", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			order := testExtractor().Extract(transcript("C: " + tt.text))
			assert.Equal(t, tt.want, order.PaymentMethod)
		})
	}
}

func TestExtract_Delivery(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantOption  models.DeliveryOption
		wantAddress string
	}{
		{
			name:       "defaults to home",
			text:       "I want Dune.",
			wantOption: models.DeliveryHome,
		},
		{
			name:        "home with residence",
			text:        "I live at 42 Wallaby Way, Sydney",
			wantOption:  models.DeliveryHome,
			wantAddress: "42 Wallaby Way, Sydney",
		},
		{
			name:        "home with unlabeled address",
			text:        "Home delivery please, address 12 Baker Street London",
			wantOption:  models.DeliveryHome,
			wantAddress: "12 Baker Street London",
		},
		{
			name:       "pickup drops address",
			text:       "I'll pick it up from the store. My address is 1 Main Street, Springfield",
			wantOption: models.DeliveryStorePickup,
		},
		{
			name:       "express",
			text:       "I need it urgently, same day if possible",
			wantOption: models.DeliveryExpress,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := testExtractor().Extract(transcript("C: " + tt.text))
			assert.Equal(t, tt.wantOption, order.DeliveryOption)
			assert.Equal(t, tt.wantAddress, order.DeliveryAddress)
		})
	}
}

func TestExtract_SpecialRequests(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "Special request: please gift wrap it", want: "please gift wrap it"},
		{text: "Oh and, add a bookmark please", want: "add a bookmark please"},
		{text: "Make sure the cover is not damaged", want: "the cover is not damaged"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			order := testExtractor().Extract(transcript("C: " + tt.text))
			assert.Equal(t, tt.want, order.SpecialRequests)
		})
	}
}

func TestExtract_Total(t *testing.T) {
	utts := transcript("C: I need 2 copies")

	order := testExtractor().Extract(utts)
	require.NotNil(t, order.TotalAmount)
	assert.InDelta(t, 31.98, *order.TotalAmount, 1e-9)

	priced := New(Config{UnitPrice: 10, Now: func() time.Time { return testNow }}).Extract(utts)
	require.NotNil(t, priced.TotalAmount)
	assert.InDelta(t, 20.0, *priced.TotalAmount, 1e-9)
	assert.Equal(t, 10.0, priced.UnitPrice)
}
