package model

import "time"

// TimelineBlock is one scheduled entry in a finalized itinerary.  It is a
// pure value type: embedded as JSON inside the itinerary row and never
// persisted on its own.
//
// Fields:
//  Time       – human clock label, 12-hour, no leading zero (e.g. "7:30 PM").
//  Icon       – emoji shown next to the entry.
//  Title      – venue or step name.
//  Subtitle   – short descriptor (e.g. "Before Dinner · 5 min walk").
//  Detail     – optional extra line.
//  Address    – optional street address.
//  Directions – whether a "get directions" affordance applies.
type TimelineBlock struct {
    Time       string `json:"time"`
    Icon       string `json:"icon"`
    Title      string `json:"title"`
    Subtitle   string `json:"subtitle"`
    Detail     string `json:"detail,omitempty"`
    Address    string `json:"address,omitempty"`
    Directions bool   `json:"directions"`
}

// Itinerary statuses and feedback ratings.
const (
    StatusUpcoming = "upcoming"
    StatusPast     = "past"

    RatingGreat    = "great"
    RatingMeh      = "meh"
    RatingDisaster = "disaster"
)

// Itinerary is the confirmed, durable outcome of a planning session.  It is
// created once at confirmation and mutated only by feedback submission,
// which also flips Status to "past".
//
// Fields:
//  ID           – primary key identifier.
//  UserID       – owning user.
//  Headline     – generated title, "{cuisine} Night".
//  DateLabel    – human date label shown on the card.
//  Restaurant   – embedded restaurant snapshot.
//  Activities   – embedded activity snapshots in timeline order.
//  Timeline     – ordered timeline blocks.
//  CostEstimate – heuristic "$MIN-MAX" range, not a quote.
//  Status       – "upcoming" until feedback arrives, then "past".
//  Rating       – feedback rating, nil until submitted.
//  Comment      – optional feedback comment.
//  ShareToken   – unique token backing the public share link.
//  CreatedAt    – confirmation timestamp.
type Itinerary struct {
    ID           uint64          `json:"id"`             // itineraries.id
    UserID       uint64          `json:"user_id"`        // itineraries.user_id
    Headline     string          `json:"headline"`       // itineraries.headline
    DateLabel    string          `json:"date_label"`     // itineraries.date_label
    Restaurant   Business        `json:"restaurant"`     // itineraries.restaurant (JSON)
    Activities   []Business      `json:"activities"`     // itineraries.activities (JSON)
    Timeline     []TimelineBlock `json:"timeline"`       // itineraries.timeline (JSON)
    CostEstimate string          `json:"cost_estimate"`  // itineraries.cost_estimate
    Status       string          `json:"status"`         // itineraries.status
    Rating       *string         `json:"rating"`         // itineraries.rating (nullable)
    Comment      *string         `json:"comment"`        // itineraries.comment (nullable)
    ShareToken   string          `json:"share_token"`    // itineraries.share_token
    CreatedAt    time.Time       `json:"created_at"`     // itineraries.created_at
}

// ValidRating reports whether r is one of the accepted feedback ratings.
func ValidRating(r string) bool {
    return r == RatingGreat || r == RatingMeh || r == RatingDisaster
}
