package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification kinds. The set is closed; CreateNotification rejects anything
// else before persistence.
const (
	NotificationLike           = "like"
	NotificationComment        = "comment"
	NotificationFollow         = "follow"
	NotificationJobApplication = "jobApplication"
	NotificationJobAccept      = "jobAccept"
	NotificationJobReject      = "jobReject"
	NotificationMessage        = "message"
	NotificationStoryReply     = "storyReply"
	NotificationPostTag        = "postTag"
)

// SystemSender marks notifications that originate from the platform rather
// than another user.
const SystemSender = "system"

var notificationKinds = map[string]struct{}{
	NotificationLike:           {},
	NotificationComment:        {},
	NotificationFollow:         {},
	NotificationJobApplication: {},
	NotificationJobAccept:      {},
	NotificationJobReject:      {},
	NotificationMessage:        {},
	NotificationStoryReply:     {},
	NotificationPostTag:        {},
}

// Notification represents a durable notification document stored in MongoDB.
// Only IsRead is ever mutated after creation.
type Notification struct {
	ID          primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	RecipientID string              `json:"recipient_id" bson:"recipient_id"`
	SenderID    string              `json:"sender_id,omitempty" bson:"sender_id,omitempty"`
	Kind        string              `json:"kind" bson:"kind"`
	PostID      *primitive.ObjectID `json:"post_id,omitempty" bson:"post_id,omitempty"`
	StoryID     *primitive.ObjectID `json:"story_id,omitempty" bson:"story_id,omitempty"`
	JobID       *primitive.ObjectID `json:"job_id,omitempty" bson:"job_id,omitempty"`
	Message     string              `json:"message" bson:"message"`
	IsRead      bool                `json:"is_read" bson:"is_read"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
}

// Validate checks the invariants enforced before persistence: a recipient
// must be present and the kind must belong to the closed enumeration. The
// subject references are advisory and intentionally not cross-checked
// against the kind.
func (n *Notification) Validate() error {
	if n.RecipientID == "" {
		return fmt.Errorf("notification recipient is required")
	}
	if _, ok := notificationKinds[n.Kind]; !ok {
		return fmt.Errorf("invalid notification kind %q", n.Kind)
	}
	return nil
}

// EnrichedNotification pairs a stored notification with the denormalized
// sender snippet resolved at read time. The same shape is pushed over the
// live channel as the "notification" event payload.
type EnrichedNotification struct {
	Notification
	SenderDetails UserCompact `json:"sender_details"`
	PostSummary   *Post       `json:"post,omitempty"`
	JobSummary    *JobCompact `json:"job,omitempty"`
}
