package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Feedback struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	FeedbackID string             `bson:"feedback_id" json:"feedback_id"`
	RoomID     string             `bson:"room_id" json:"room_id"`

	CustomerID   string `bson:"customer_id,omitempty" json:"customer_id,omitempty"`
	CustomerName string `bson:"customer_name,omitempty" json:"customer_name,omitempty"`

	// 1..5
	Rating            int  `bson:"rating" json:"rating"`
	ServiceQuality    *int `bson:"service_quality,omitempty" json:"service_quality,omitempty"`
	AgentHelpfulness  *int `bson:"agent_helpfulness,omitempty" json:"agent_helpfulness,omitempty"`
	OverallExperience *int `bson:"overall_experience,omitempty" json:"overall_experience,omitempty"`

	FeedbackText string `bson:"feedback_text,omitempty" json:"feedback_text,omitempty"`
	Suggestions  string `bson:"suggestions,omitempty" json:"suggestions,omitempty"`

	FeedbackDate time.Time `bson:"feedback_date" json:"feedback_date"`
}
