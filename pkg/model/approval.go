package model

import "time"

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// PolicyViolation describes one corporate travel rule the booking tripped.
type PolicyViolation struct {
	Rule    string `json:"rule" bson:"rule"`
	Message string `json:"message" bson:"message"`
}

// ApprovalRequest is a corporate booking parked in the manager review queue
// instead of going through payment capture.
type ApprovalRequest struct {
	ID         string            `json:"id,omitempty" bson:"_id,omitempty"`
	BookingID  string            `json:"booking_id" bson:"booking_id"`
	UserID     string            `json:"user_id" bson:"user_id"`
	Total      int64             `json:"total" bson:"total"`
	Violations []PolicyViolation `json:"violations" bson:"violations"`
	Status     ApprovalStatus    `json:"status" bson:"status"`
	CreatedAt  time.Time         `json:"created_at" bson:"created_at"`
}
