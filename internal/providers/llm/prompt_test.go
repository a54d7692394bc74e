package llm

import (
	"fmt"
	"strings"
	"testing"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"github.com/stretchr/testify/assert"

	"github.com/yoockh/bookwise/internal/extraction"
	"github.com/yoockh/bookwise/internal/models"
)

func TestReplyPrompt_Collecting(t *testing.T) {
	utts := []models.Utterance{
		{Role: models.RoleAssistant, Text: "Welcome to BookWise!"},
		{Role: models.RoleCustomer, Text: " I'd like Dune. "},
	}
	r := extraction.Readiness{
		State:   extraction.StateCollecting,
		Missing: []extraction.Field{extraction.FieldQuantity},
	}

	p := ReplyPrompt(utts, r)
	assert.Contains(t, p, "Assistant: Welcome to BookWise!\nCustomer: I'd like Dune.\n")
	assert.Contains(t, p, "Order status: collecting")
	assert.Contains(t, p, "- "+extraction.Prompt(extraction.FieldQuantity))
}

func TestReplyPrompt_Ready(t *testing.T) {
	p := ReplyPrompt(nil, extraction.Readiness{State: extraction.StateReady})
	assert.Contains(t, p, "Ask the customer to confirm the order.")
	assert.NotContains(t, p, "Still missing")
}

func TestReplyPrompt_KeepsRecentTurns(t *testing.T) {
	var utts []models.Utterance
	for i := 0; i < maxTurns+5; i++ {
		utts = append(utts, models.Utterance{Role: models.RoleCustomer, Text: fmt.Sprintf("turn %d.", i)})
	}

	p := ReplyPrompt(utts, extraction.Readiness{State: extraction.StateCollecting})
	assert.NotContains(t, p, "turn 4.")
	assert.Contains(t, p, "turn 5.")
	assert.Equal(t, maxTurns, strings.Count(p, "Customer: "))
}

func TestReplyText(t *testing.T) {
	resp := &vertexgenai.GenerateContentResponse{Candidates: []*vertexgenai.Candidate{
		{Content: &vertexgenai.Content{Parts: []vertexgenai.Part{vertexgenai.Text("Lovely choice. "), vertexgenai.Text("")}}},
		{Content: nil},
		{Content: &vertexgenai.Content{Parts: []vertexgenai.Part{vertexgenai.Text("How many copies?")}}},
	}}
	assert.Equal(t, []string{"Lovely choice. ", "How many copies?"}, replyText(resp))
}
