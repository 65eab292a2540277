// Package events defines the review-created event bus: payloads, the
// publisher called by the submission pipeline, and the consumer feeding the
// enrichment orchestrator. Delivery is at least once; consumers must
// tolerate redelivery and out-of-order batches.
package events

const (
	// ReviewCreatedQueue is the durable queue carrying creation events.
	ReviewCreatedQueue = "review.created"

	// EventTypeCreated marks an event as a review creation; anything else is
	// skipped by the orchestrator.
	EventTypeCreated = "created"
)

type ReviewCreatedEvent struct {
	EventType  string `json:"event_type"`
	FeedbackID string `json:"feedback_id"`
	BrandID    string `json:"brand_id"`
	ProductID  string `json:"product_id"`
	CreatedAt  string `json:"created_at"`
}
