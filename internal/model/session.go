package model

import "time"

// Stage identifies where a planning session currently sits in the guided
// flow.  Stages only ever move forward; the only way back is discarding the
// session entirely.
type Stage string

const (
    StageLoading     Stage = "loading"     // created, AI query in flight
    StageRestaurants Stage = "restaurants" // restaurant options persisted
    StageActivities  Stage = "activities"  // restaurant chosen, activity options persisted
    StageSummary     Stage = "summary"     // activities chosen, awaiting confirmation
)

// Intent is the parsed shape of the user's free-text prompt.  All fields are
// optional strings; absent values stay empty.
type Intent struct {
    Location string `json:"location,omitempty"`
    Date     string `json:"date,omitempty"`
    Time     string `json:"time,omitempty"`
    Budget   string `json:"budget,omitempty"`
}

// PlanSession is the transient record of one in-progress date-planning flow.
// It is created at plan start, mutated at each stage transition, and hard
// deleted once an itinerary is confirmed or the user resets.
//
// Fields:
//  ID           – primary key identifier.
//  UserID       – owning user; every read and write is scoped to it.
//  Prompt       – the raw natural-language request.
//  Intent       – parsed location/date/time/budget, all optional.
//  Stage        – current stage, see Stage constants.
//  Restaurant   – chosen restaurant snapshot, nil until selection.
//  ReservedTime – chosen reservation time label (e.g. "7:30 PM"), empty until selection.
//  Activities   – chosen activity snapshots in selection order, possibly empty.
//  ChatID       – provider conversation token for multi-turn refinement.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last stage-transition timestamp.
type PlanSession struct {
    ID           uint64     `json:"id"`            // plan_sessions.id
    UserID       uint64     `json:"user_id"`       // plan_sessions.user_id
    Prompt       string     `json:"prompt"`        // plan_sessions.prompt
    Intent       Intent     `json:"intent"`        // plan_sessions.intent (JSON)
    Stage        Stage      `json:"stage"`         // plan_sessions.stage
    Restaurant   *Business  `json:"restaurant"`    // plan_sessions.restaurant (JSON, nullable)
    ReservedTime string     `json:"reserved_time"` // plan_sessions.reserved_time (nullable)
    Activities   []Business `json:"activities"`    // plan_sessions.activities (JSON)
    ChatID       string     `json:"chat_id"`       // plan_sessions.chat_id (nullable)
    CreatedAt    time.Time  `json:"created_at"`    // plan_sessions.created_at
    UpdatedAt    time.Time  `json:"updated_at"`    // plan_sessions.updated_at
}

// Option kinds stored in session_options.
const (
    OptionRestaurant = "restaurant"
    OptionActivity   = "activity"
)
