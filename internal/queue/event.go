// Package queue defines message payloads exchanged over the message broker.
package queue

// ItineraryConfirmedEvent is published when a planning session is confirmed
// into an itinerary.  It carries enough information for downstream
// consumers to log, notify, or feed analytics without querying the primary
// database.
type ItineraryConfirmedEvent struct {
    ItineraryID    uint64 `json:"itinerary_id"`
    UserID         uint64 `json:"user_id"`
    Headline       string `json:"headline"`
    DateLabel      string `json:"date_label"`
    RestaurantName string `json:"restaurant_name"`
    ActivityCount  int    `json:"activity_count"`
    CostEstimate   string `json:"cost_estimate"`
    ConfirmedAt    string `json:"confirmed_at"`
}

// SessionDiscardedEvent is published whenever a plan session row is deleted,
// either by confirmation or by an explicit reset.  The cleanup consumer
// uses it to remove the session's orphaned option snapshots.
type SessionDiscardedEvent struct {
    SessionID   uint64 `json:"session_id"`
    UserID      uint64 `json:"user_id"`
    Reason      string `json:"reason"` // "confirmed" or "reset"
    DiscardedAt string `json:"discarded_at"`
}

// Queue names shared by publisher and consumer.
const (
    ItineraryQueueName = "itinerary.confirmed"
    CleanupQueueName   = "session.discarded"
)
