package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/bookwise/internal/repositories/memory"
	"github.com/yoockh/bookwise/internal/utils"
)

func intp(v int) *int { return &v }

func TestFeedbackService_Validation(t *testing.T) {
	svc := NewFeedbackService(memory.NewFeedbackRepo())
	ctx := context.Background()

	tests := []struct {
		name string
		in   FeedbackInput
	}{
		{"missing room", FeedbackInput{Rating: 5}},
		{"rating low", FeedbackInput{RoomID: "r1", Rating: 0}},
		{"rating high", FeedbackInput{RoomID: "r1", Rating: 6}},
		{"sub-score out of range", FeedbackInput{RoomID: "r1", Rating: 4, AgentHelpfulness: intp(9)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument), "got %v", err)
		})
	}
}

func TestFeedbackService_CreateAndList(t *testing.T) {
	svc := NewFeedbackService(memory.NewFeedbackRepo())
	ctx := context.Background()

	fb, err := svc.Create(ctx, FeedbackInput{
		RoomID:         "r1",
		CustomerName:   "Priya",
		Rating:         5,
		ServiceQuality: intp(4),
		FeedbackText:   "Quick and friendly.",
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^FB-\d{8}-[0-9A-F]{8}$`), fb.FeedbackID)
	assert.False(t, fb.FeedbackDate.IsZero())

	_, err = svc.Create(ctx, FeedbackInput{RoomID: "r2", Rating: 3})
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	room, err := svc.ListByRoom(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, room, 1)
	assert.Equal(t, 4, *room[0].ServiceQuality)

	_, err = svc.ListByRoom(ctx, "r9")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}
