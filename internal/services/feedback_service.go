package services

import (
	"context"
	"strings"
	"time"

	"github.com/yoockh/bookwise/internal/models"
	"github.com/yoockh/bookwise/internal/repositories"
	"github.com/yoockh/bookwise/internal/utils"
)

type FeedbackInput struct {
	RoomID            string `json:"room_id"`
	CustomerID        string `json:"customer_id"`
	CustomerName      string `json:"customer_name"`
	Rating            int    `json:"rating"`
	FeedbackText      string `json:"feedback_text"`
	ServiceQuality    *int   `json:"service_quality"`
	AgentHelpfulness  *int   `json:"agent_helpfulness"`
	OverallExperience *int   `json:"overall_experience"`
	Suggestions       string `json:"suggestions"`
}

type FeedbackService interface {
	Create(ctx context.Context, in FeedbackInput) (*models.Feedback, error)
	List(ctx context.Context) ([]models.Feedback, error)
	ListByRoom(ctx context.Context, roomID string) ([]models.Feedback, error)
}

type feedbackService struct {
	feedback repositories.FeedbackRepository
	now      func() time.Time
}

func NewFeedbackService(feedback repositories.FeedbackRepository) FeedbackService {
	return &feedbackService{feedback: feedback, now: time.Now}
}

func (s *feedbackService) Create(ctx context.Context, in FeedbackInput) (*models.Feedback, error) {
	const op = "FeedbackService.Create"

	if strings.TrimSpace(in.RoomID) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "room_id is required", nil)
	}
	if !validScore(in.Rating) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "rating must be between 1 and 5", nil)
	}
	for name, v := range map[string]*int{
		"service_quality":    in.ServiceQuality,
		"agent_helpfulness":  in.AgentHelpfulness,
		"overall_experience": in.OverallExperience,
	} {
		if v != nil && !validScore(*v) {
			return nil, utils.E(utils.CodeInvalidArgument, op, name+" must be between 1 and 5", nil)
		}
	}

	now := s.now().UTC()
	f := &models.Feedback{
		FeedbackID:        utils.NewFeedbackID(now),
		RoomID:            strings.TrimSpace(in.RoomID),
		CustomerID:        in.CustomerID,
		CustomerName:      in.CustomerName,
		Rating:            in.Rating,
		ServiceQuality:    in.ServiceQuality,
		AgentHelpfulness:  in.AgentHelpfulness,
		OverallExperience: in.OverallExperience,
		FeedbackText:      in.FeedbackText,
		Suggestions:       in.Suggestions,
		FeedbackDate:      now,
	}
	if err := s.feedback.Insert(ctx, f); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to store feedback", err)
	}
	return f, nil
}

func (s *feedbackService) List(ctx context.Context) ([]models.Feedback, error) {
	const op = "FeedbackService.List"

	out, err := s.feedback.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list feedback", err)
	}
	return out, nil
}

func (s *feedbackService) ListByRoom(ctx context.Context, roomID string) ([]models.Feedback, error) {
	const op = "FeedbackService.ListByRoom"

	if roomID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "room_id is required", nil)
	}
	out, err := s.feedback.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list feedback", err)
	}
	if len(out) == 0 {
		return nil, utils.E(utils.CodeNotFound, op, "no feedback found for this room", utils.ErrNotFound)
	}
	return out, nil
}

func validScore(v int) bool { return v >= 1 && v <= 5 }
