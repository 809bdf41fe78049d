// Package queue defines message payloads exchanged over the message broker.
package queue

// Activity event types published to the post.activity queue.
const (
	ActivityPostCreated = "post.created"
	ActivityPostLiked   = "post.liked"
)

// ActivityEvent is published when a post is created or liked. It carries
// enough for downstream consumers (notification feed, analytics) without
// querying the primary database.
type ActivityEvent struct {
	Type       string `json:"type"`
	PostID     string `json:"post_id"`
	ActorID    string `json:"actor_id"` // user who performed the action
	OwnerID    string `json:"owner_id"` // user who owns the post
	OccurredAt string `json:"occurred_at"`
}
