package llm

import (
	"strings"

	"github.com/yoockh/bookwise/internal/extraction"
	"github.com/yoockh/bookwise/internal/models"
)

// Instructions is the system prompt of the bookstore voice assistant.
const Instructions = `You are a professional voice assistant for a bookstore.

You record book orders. Before confirming a sale you must have all six fields:
customer full name, customer ID or contact number, book title, quantity,
payment method, and delivery option (store pickup, or a delivery address).
Never guess a missing detail. Ask for it politely and clearly, one question
at a time. When everything is collected, say "Noted. Shall I proceed to
confirm the order?"

You also answer customer questions about availability, prices, genres, order
tracking, store timings, delivery options, payment methods and returns. If a
question has nothing to do with books, steer the customer back to how you can
help with books.

Replies are spoken aloud: keep them short, warm and professional, without
lists or markup.`

// maxTurns bounds how much conversation history goes into a prompt.
const maxTurns = 30

// ReplyPrompt asks for the assistant's next turn given the conversation so
// far and what the order still lacks.
func ReplyPrompt(utts []models.Utterance, r extraction.Readiness) string {
	var b strings.Builder

	b.WriteString("Conversation so far:\n")
	if len(utts) > maxTurns {
		utts = utts[len(utts)-maxTurns:]
	}
	for _, u := range utts {
		speaker := "Customer"
		if u.Role == models.RoleAssistant {
			speaker = "Assistant"
		}
		b.WriteString(speaker + ": " + strings.TrimSpace(u.Text) + "\n")
	}

	b.WriteString("\nOrder status: " + string(r.State) + "\n")
	switch r.State {
	case extraction.StateCollecting:
		b.WriteString("Still missing. Ask for the first of these unless the customer asked something else:\n")
		for _, p := range r.Prompts() {
			b.WriteString("- " + p + "\n")
		}
	case extraction.StateReady:
		b.WriteString("All required details are known. Ask the customer to confirm the order.\n")
	case extraction.StateConfirmed:
		b.WriteString("The order is already confirmed. Help with anything else.\n")
	}

	b.WriteString("\nReply as the Assistant with a single short spoken turn.")
	return b.String()
}
