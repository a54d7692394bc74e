package extraction

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChainFirst(t *testing.T) {
	ch := Chain{Field: FieldBookTitle, Rules: []Rule{
		{Name: "strong", Pattern: regexp.MustCompile(`<(\w+)>`)},
		{
			Name:    "weak",
			Pattern: regexp.MustCompile(`\[(\w+)\]`),
			Accept:  func(raw string) bool { return raw != "skip" },
		},
	}}

	t.Run("higher rule wins over earlier text", func(t *testing.T) {
		c, ok := ch.First("[early] then <late>")
		assert.True(t, ok)
		assert.Equal(t, Candidate{Field: FieldBookTitle, Raw: "late", Rule: "strong", Rank: 0}, c)
	})

	t.Run("rejected occurrence falls through to the next", func(t *testing.T) {
		c, ok := ch.First("[skip] [keep]")
		assert.True(t, ok)
		assert.Equal(t, "keep", c.Raw)
		assert.Equal(t, 1, c.Rank)
	})

	t.Run("no match", func(t *testing.T) {
		_, ok := ch.First("plain text")
		assert.False(t, ok)
	})
}

func TestChainFirst_WholeMatchWithoutGroup(t *testing.T) {
	ch := Chain{Field: FieldDeliveryOption, Rules: []Rule{
		{Name: "express_delivery", Pattern: regexp.MustCompile(`(?i)\bexpress\b`)},
	}}
	c, ok := ch.First("Express please")
	assert.True(t, ok)
	assert.Equal(t, "Express", c.Raw)
}

func TestClipAtWords(t *testing.T) {
	clip := clipAtWords("and", "my")
	assert.Equal(t, "Sam", clip("Sam and my number"))
	assert.Equal(t, "Sam Lee", clip("Sam Lee"))
	assert.Empty(t, strings.TrimSpace(clip("and then")))
}
