package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationValidate(t *testing.T) {
	valid := Notification{
		RecipientID: "u-1",
		SenderID:    "u-2",
		Kind:        NotificationLike,
		Message:     "liked your post",
	}
	assert.NoError(t, valid.Validate())
}

func TestNotificationValidateRequiresRecipient(t *testing.T) {
	n := Notification{Kind: NotificationFollow}
	assert.Error(t, n.Validate())
}

func TestNotificationValidateRejectsUnknownKind(t *testing.T) {
	for _, kind := range []string{"", "poke", "Like", "job_application"} {
		n := Notification{RecipientID: "u-1", Kind: kind}
		assert.Errorf(t, n.Validate(), "kind %q must be rejected", kind)
	}
}

func TestNotificationValidateAcceptsEveryKind(t *testing.T) {
	kinds := []string{
		NotificationLike, NotificationComment, NotificationFollow,
		NotificationJobApplication, NotificationJobAccept, NotificationJobReject,
		NotificationMessage, NotificationStoryReply, NotificationPostTag,
	}
	for _, kind := range kinds {
		n := Notification{RecipientID: "u-1", Kind: kind}
		assert.NoErrorf(t, n.Validate(), "kind %q is part of the closed set", kind)
	}
}

func TestNotificationValidateSubjectRefsOptional(t *testing.T) {
	// A message notification carries no post, story, or job reference
	n := Notification{RecipientID: "u-1", SenderID: "u-2", Kind: NotificationMessage}
	assert.NoError(t, n.Validate())
}
