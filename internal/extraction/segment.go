package extraction

import (
	"sort"
	"strings"

	"github.com/yoockh/bookwise/internal/models"
)

// Views are the concatenated text blobs the field rules run over.
type Views struct {
	Full      string `json:"full"`
	Customer  string `json:"customer"`
	Assistant string `json:"assistant"`
}

// Segment orders utterances by sequence index (then timestamp) and joins their
// text per role. The input slice is not modified.
func Segment(utts []models.Utterance) Views {
	ordered := make([]models.Utterance, len(utts))
	copy(ordered, utts)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].SequenceIndex != ordered[j].SequenceIndex {
			return ordered[i].SequenceIndex < ordered[j].SequenceIndex
		}
		return ordered[i].Timestamp < ordered[j].Timestamp
	})

	var full, customer, assistant []string
	for _, u := range ordered {
		full = append(full, u.Text)
		switch u.Role {
		case models.RoleCustomer:
			customer = append(customer, u.Text)
		case models.RoleAssistant:
			assistant = append(assistant, u.Text)
		}
	}

	return Views{
		Full:      strings.Join(full, "\n"),
		Customer:  strings.Join(customer, "\n"),
		Assistant: strings.Join(assistant, "\n"),
	}
}
