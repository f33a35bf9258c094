// Package planner drives a plan session through its four stages: loading,
// restaurants, activities, summary.  Each transition acquires external data
// through the venue finder, persists the results, then advances the stage.
// Upstream failures degrade to empty option lists so a flaky provider never
// blocks a user; persistence failures are fatal for the operation.
package planner

import (
    "context"
    "log"
    "time"

    "github.com/google/uuid"

    "github.com/impressmydate/backend/internal/model"
    "github.com/impressmydate/backend/internal/queue"
)

// ActivityRadiusMeters is the fixed radius of the nearby-activity search
// around the chosen restaurant.
const ActivityRadiusMeters = 1200

// VenueFinder acquires venue options from the conversational provider.
// *yelp.Client satisfies it; tests substitute a stub.
type VenueFinder interface {
    FindRestaurants(ctx context.Context, prompt, location, budget, chatID string) ([]model.Business, string, error)
    FindActivitiesNear(ctx context.Context, lat, lng float64, radiusMeters int) ([]model.Business, error)
}

// SessionStore is the slice of the repository layer the orchestrator
// needs for plan sessions.
type SessionStore interface {
    Create(ctx context.Context, userID uint64, prompt string, intent model.Intent) (uint64, error)
    GetForUser(ctx context.Context, sessionID, userID uint64) (*model.PlanSession, error)
    SetChatID(ctx context.Context, sessionID uint64, chatID string) error
    AdvanceStage(ctx context.Context, sessionID uint64, stage model.Stage) error
    SetRestaurant(ctx context.Context, sessionID uint64, restaurant model.Business, reservedTime string) error
    SetActivities(ctx context.Context, sessionID uint64, activities []model.Business) error
    Delete(ctx context.Context, sessionID uint64) error
}

// OptionStore persists and reloads the venue snapshots offered to a session.
type OptionStore interface {
    BulkInsert(ctx context.Context, sessionID uint64, kind string, options []model.Business) error
    ListBySession(ctx context.Context, sessionID uint64, kind string) ([]model.Business, error)
}

// ItineraryStore persists the confirmed itinerary and removes the session
// atomically.
type ItineraryStore interface {
    CreateAndDiscardSession(ctx context.Context, it *model.Itinerary, sessionID uint64) error
}

// Publisher emits domain events after state changes.  Publishing is
// best-effort: implementations log failures and the orchestrator never
// fails a request over one.
type Publisher interface {
    ItineraryConfirmed(ctx context.Context, ev queue.ItineraryConfirmedEvent)
    SessionDiscarded(ctx context.Context, ev queue.SessionDiscardedEvent)
}

// Preferences carries the profile context folded into the restaurant query.
type Preferences struct {
    Location string
    Budget   string
}

// Orchestrator sequences the planning flow.  It holds no mutable state;
// every operation is an independent request against durable storage.
type Orchestrator struct {
    venues   VenueFinder
    sessions SessionStore
    options  OptionStore
    itins    ItineraryStore
    events   Publisher
}

// NewOrchestrator wires the orchestrator's dependencies.  All but events
// must be non-nil; a nil events publisher disables event emission.
func NewOrchestrator(venues VenueFinder, sessions SessionStore, options OptionStore, itins ItineraryStore, events Publisher) *Orchestrator {
    if venues == nil || sessions == nil || options == nil || itins == nil {
        panic("nil dependency passed to NewOrchestrator")
    }
    return &Orchestrator{venues: venues, sessions: sessions, options: options, itins: itins, events: events}
}

// StartResult is returned by Start.
type StartResult struct {
    SessionID   uint64
    Stage       model.Stage
    Restaurants []model.Business
}

// Start creates a session in stage "loading", queries the provider for
// restaurants matching the prompt plus budget/location context, persists
// the options and advances to "restaurants".  A failed or empty provider
// call still advances the stage with zero options; the UI presents the
// empty state.
func (o *Orchestrator) Start(ctx context.Context, userID uint64, prompt string, prefs Preferences) (*StartResult, error) {
    intent := parseIntent(prompt)
    if intent.Budget == "" {
        intent.Budget = prefs.Budget
    }
    if intent.Location == "" {
        intent.Location = prefs.Location
    }

    sessionID, err := o.sessions.Create(ctx, userID, prompt, intent)
    if err != nil {
        return nil, err
    }

    restaurants, chatID, err := o.venues.FindRestaurants(ctx, prompt, intent.Location, intent.Budget, "")
    if err != nil {
        // Deliberate policy: the user is shown fewer options, never an error.
        log.Printf("planner: restaurant query failed for session %d: %v", sessionID, err)
        restaurants = []model.Business{}
    }
    if chatID != "" {
        if err := o.sessions.SetChatID(ctx, sessionID, chatID); err != nil {
            log.Printf("planner: store chat id for session %d: %v", sessionID, err)
        }
    }

    if err := o.options.BulkInsert(ctx, sessionID, model.OptionRestaurant, restaurants); err != nil {
        return nil, err
    }
    if err := o.sessions.AdvanceStage(ctx, sessionID, model.StageRestaurants); err != nil {
        return nil, err
    }

    return &StartResult{SessionID: sessionID, Stage: model.StageRestaurants, Restaurants: restaurants}, nil
}

// SelectResult is returned by SelectRestaurant.
type SelectResult struct {
    Stage      model.Stage
    Activities []model.Business
}

// SelectRestaurant stores the chosen restaurant snapshot and reservation
// time, advances to "activities", and, only when the snapshot carries
// coordinates, searches for nearby activities within the fixed radius.
func (o *Orchestrator) SelectRestaurant(ctx context.Context, userID, sessionID uint64, restaurant model.Business, reservedTime string) (*SelectResult, error) {
    if _, err := o.sessions.GetForUser(ctx, sessionID, userID); err != nil {
        return nil, err
    }
    if err := o.sessions.SetRestaurant(ctx, sessionID, restaurant, reservedTime); err != nil {
        return nil, err
    }

    activities := []model.Business{}
    if restaurant.HasCoordinates() {
        found, err := o.venues.FindActivitiesNear(ctx, *restaurant.Latitude, *restaurant.Longitude, ActivityRadiusMeters)
        if err != nil {
            log.Printf("planner: activity query failed for session %d: %v", sessionID, err)
        } else {
            activities = found
        }
    }
    if err := o.options.BulkInsert(ctx, sessionID, model.OptionActivity, activities); err != nil {
        return nil, err
    }

    return &SelectResult{Stage: model.StageActivities, Activities: activities}, nil
}

// SelectActivities stores the chosen activity list on the session and
// advances to "summary".  When skip is set the stored list is always empty
// regardless of what was previously selected.
func (o *Orchestrator) SelectActivities(ctx context.Context, userID, sessionID uint64, activities []model.Business, skip bool) (model.Stage, error) {
    if _, err := o.sessions.GetForUser(ctx, sessionID, userID); err != nil {
        return "", err
    }
    if skip {
        activities = []model.Business{}
    }
    if err := o.sessions.SetActivities(ctx, sessionID, activities); err != nil {
        return "", err
    }
    return model.StageSummary, nil
}

// Confirm builds the itinerary from the session's selections, persists it
// atomically with the session delete, emits the confirmation and cleanup
// events, and returns the itinerary.  A session without a selected
// restaurant is a validation failure.
func (o *Orchestrator) Confirm(ctx context.Context, userID, sessionID uint64, dateLabelOverride string) (*model.Itinerary, error) {
    s, err := o.sessions.GetForUser(ctx, sessionID, userID)
    if err != nil {
        return nil, err
    }

    dateLabel := dateLabelOverride
    if dateLabel == "" {
        dateLabel = s.Intent.Date
    }
    it, err := BuildItinerary(userID, s.Restaurant, s.Activities, s.ReservedTime, dateLabel)
    if err != nil {
        return nil, err
    }
    it.ShareToken = uuid.NewString()

    if err := o.itins.CreateAndDiscardSession(ctx, it, sessionID); err != nil {
        return nil, err
    }

    if o.events != nil {
        now := time.Now().UTC().Format(time.RFC3339)
        o.events.ItineraryConfirmed(ctx, queue.ItineraryConfirmedEvent{
            ItineraryID:    it.ID,
            UserID:         userID,
            Headline:       it.Headline,
            DateLabel:      it.DateLabel,
            RestaurantName: it.Restaurant.Name,
            ActivityCount:  len(it.Activities),
            CostEstimate:   it.CostEstimate,
            ConfirmedAt:    now,
        })
        o.events.SessionDiscarded(ctx, queue.SessionDiscardedEvent{
            SessionID:   sessionID,
            UserID:      userID,
            Reason:      "confirmed",
            DiscardedAt: now,
        })
    }
    return it, nil
}

// Reset discards the whole session, the only backward move in the flow.
func (o *Orchestrator) Reset(ctx context.Context, userID, sessionID uint64) error {
    if _, err := o.sessions.GetForUser(ctx, sessionID, userID); err != nil {
        return err
    }
    if err := o.sessions.Delete(ctx, sessionID); err != nil {
        return err
    }
    if o.events != nil {
        o.events.SessionDiscarded(ctx, queue.SessionDiscardedEvent{
            SessionID:   sessionID,
            UserID:      userID,
            Reason:      "reset",
            DiscardedAt: time.Now().UTC().Format(time.RFC3339),
        })
    }
    return nil
}

// State reloads a session with its persisted option lists so the client can
// resume a flow mid-way; the server record is the source of truth.
type State struct {
    Session     *model.PlanSession
    Restaurants []model.Business
    Activities  []model.Business
}

// GetState returns the session and its stored options, ownership-scoped.
func (o *Orchestrator) GetState(ctx context.Context, userID, sessionID uint64) (*State, error) {
    s, err := o.sessions.GetForUser(ctx, sessionID, userID)
    if err != nil {
        return nil, err
    }
    restaurants, err := o.options.ListBySession(ctx, sessionID, model.OptionRestaurant)
    if err != nil {
        return nil, err
    }
    activities, err := o.options.ListBySession(ctx, sessionID, model.OptionActivity)
    if err != nil {
        return nil, err
    }
    return &State{Session: s, Restaurants: restaurants, Activities: activities}, nil
}
