package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/impressmydate/backend/internal/model"
	"github.com/impressmydate/backend/internal/queue"
)

// ----- fakes -----

type fakeVenues struct {
	restaurants []model.Business
	chatID      string
	restErr     error
	activities  []model.Business
	actErr      error

	lastPrompt   string
	lastLocation string
	lastBudget   string
	actCalls     int
}

func (f *fakeVenues) FindRestaurants(_ context.Context, prompt, location, budget, _ string) ([]model.Business, string, error) {
	f.lastPrompt, f.lastLocation, f.lastBudget = prompt, location, budget
	return f.restaurants, f.chatID, f.restErr
}

func (f *fakeVenues) FindActivitiesNear(_ context.Context, _, _ float64, _ int) ([]model.Business, error) {
	f.actCalls++
	return f.activities, f.actErr
}

type fakeSessions struct {
	nextID   uint64
	rows     map[uint64]*model.PlanSession
	getErr   error
	deleted  []uint64
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{nextID: 1, rows: map[uint64]*model.PlanSession{}}
}

func (f *fakeSessions) Create(_ context.Context, userID uint64, prompt string, intent model.Intent) (uint64, error) {
	id := f.nextID
	f.nextID++
	f.rows[id] = &model.PlanSession{ID: id, UserID: userID, Prompt: prompt, Intent: intent, Stage: model.StageLoading}
	return id, nil
}

func (f *fakeSessions) GetForUser(_ context.Context, sessionID, userID uint64) (*model.PlanSession, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.rows[sessionID]
	if !ok || s.UserID != userID {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (f *fakeSessions) SetChatID(_ context.Context, sessionID uint64, chatID string) error {
	f.rows[sessionID].ChatID = chatID
	return nil
}

func (f *fakeSessions) AdvanceStage(_ context.Context, sessionID uint64, stage model.Stage) error {
	f.rows[sessionID].Stage = stage
	return nil
}

func (f *fakeSessions) SetRestaurant(_ context.Context, sessionID uint64, r model.Business, reservedTime string) error {
	s := f.rows[sessionID]
	s.Restaurant = &r
	s.ReservedTime = reservedTime
	s.Stage = model.StageActivities
	return nil
}

func (f *fakeSessions) SetActivities(_ context.Context, sessionID uint64, activities []model.Business) error {
	s := f.rows[sessionID]
	s.Activities = activities
	s.Stage = model.StageSummary
	return nil
}

func (f *fakeSessions) Delete(_ context.Context, sessionID uint64) error {
	delete(f.rows, sessionID)
	f.deleted = append(f.deleted, sessionID)
	return nil
}

type fakeOptions struct {
	inserts map[string][]model.Business
}

func newFakeOptions() *fakeOptions { return &fakeOptions{inserts: map[string][]model.Business{}} }

func (f *fakeOptions) BulkInsert(_ context.Context, _ uint64, kind string, options []model.Business) error {
	f.inserts[kind] = options
	return nil
}

func (f *fakeOptions) ListBySession(_ context.Context, _ uint64, kind string) ([]model.Business, error) {
	return f.inserts[kind], nil
}

type fakeItins struct {
	saved     *model.Itinerary
	sessionID uint64
}

func (f *fakeItins) CreateAndDiscardSession(_ context.Context, it *model.Itinerary, sessionID uint64) error {
	it.ID = 42
	f.saved = it
	f.sessionID = sessionID
	return nil
}

type fakeEvents struct {
	confirmed []queue.ItineraryConfirmedEvent
	discarded []queue.SessionDiscardedEvent
}

func (f *fakeEvents) ItineraryConfirmed(_ context.Context, ev queue.ItineraryConfirmedEvent) {
	f.confirmed = append(f.confirmed, ev)
}

func (f *fakeEvents) SessionDiscarded(_ context.Context, ev queue.SessionDiscardedEvent) {
	f.discarded = append(f.discarded, ev)
}

func newTestOrchestrator(v *fakeVenues) (*Orchestrator, *fakeSessions, *fakeOptions, *fakeItins, *fakeEvents) {
	sessions := newFakeSessions()
	options := newFakeOptions()
	itins := &fakeItins{}
	events := &fakeEvents{}
	return NewOrchestrator(v, sessions, options, itins, events), sessions, options, itins, events
}

// ----- tests -----

func TestStartAdvancesDespiteProviderFailure(t *testing.T) {
	venues := &fakeVenues{restErr: errors.New("upstream down")}
	o, sessions, options, _, _ := newTestOrchestrator(venues)

	res, err := o.Start(context.Background(), 1, "dinner tonight", Preferences{})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if res.Stage != model.StageRestaurants {
		t.Errorf("stage = %q, want restaurants", res.Stage)
	}
	if len(res.Restaurants) != 0 {
		t.Errorf("restaurants = %d, want 0", len(res.Restaurants))
	}
	if sessions.rows[res.SessionID].Stage != model.StageRestaurants {
		t.Errorf("persisted stage = %q", sessions.rows[res.SessionID].Stage)
	}
	if got, ok := options.inserts[model.OptionRestaurant]; !ok || len(got) != 0 {
		t.Errorf("option insert = %v, want empty batch", got)
	}
}

func TestStartStoresChatIDAndOptions(t *testing.T) {
	venues := &fakeVenues{
		restaurants: []model.Business{{Name: "A"}, {Name: "B"}},
		chatID:      "chat-123",
	}
	o, sessions, options, _, _ := newTestOrchestrator(venues)

	res, err := o.Start(context.Background(), 1, "dinner", Preferences{})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if sessions.rows[res.SessionID].ChatID != "chat-123" {
		t.Errorf("chat id = %q", sessions.rows[res.SessionID].ChatID)
	}
	if len(options.inserts[model.OptionRestaurant]) != 2 {
		t.Errorf("stored %d restaurant options", len(options.inserts[model.OptionRestaurant]))
	}
}

func TestStartFoldsProfilePreferences(t *testing.T) {
	venues := &fakeVenues{}
	o, _, _, _, _ := newTestOrchestrator(venues)

	// Prompt carries no hints, so the saved profile fills both.
	if _, err := o.Start(context.Background(), 1, "surprise us", Preferences{Location: "Oakland", Budget: "$$"}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if venues.lastLocation != "Oakland" || venues.lastBudget != "$$" {
		t.Errorf("query context = (%q, %q), want (Oakland, $$)", venues.lastLocation, venues.lastBudget)
	}

	// An explicit prompt hint beats the profile.
	if _, err := o.Start(context.Background(), 1, "cheap tacos in Austin", Preferences{Location: "Oakland", Budget: "$$"}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if venues.lastLocation != "Austin" || venues.lastBudget != "$" {
		t.Errorf("query context = (%q, %q), want (Austin, $)", venues.lastLocation, venues.lastBudget)
	}
}

func TestSelectRestaurantSkipsSearchWithoutCoordinates(t *testing.T) {
	venues := &fakeVenues{activities: []model.Business{{Name: "Bar"}}}
	o, sessions, options, _, _ := newTestOrchestrator(venues)

	id, _ := sessions.Create(context.Background(), 1, "dinner", model.Intent{})
	res, err := o.SelectRestaurant(context.Background(), 1, id, model.Business{Name: "No Coords"}, "7:00 PM")
	if err != nil {
		t.Fatalf("SelectRestaurant: %v", err)
	}
	if venues.actCalls != 0 {
		t.Errorf("activity search called %d times, want 0", venues.actCalls)
	}
	if len(res.Activities) != 0 {
		t.Errorf("activities = %d, want 0", len(res.Activities))
	}
	if got := options.inserts[model.OptionActivity]; len(got) != 0 {
		t.Errorf("stored activity options = %v, want empty", got)
	}
	if res.Stage != model.StageActivities {
		t.Errorf("stage = %q", res.Stage)
	}
}

func TestSelectRestaurantFindsNearbyActivities(t *testing.T) {
	venues := &fakeVenues{activities: []model.Business{{Name: "Gallery"}, {Name: "Bar"}}}
	o, sessions, options, _, _ := newTestOrchestrator(venues)

	id, _ := sessions.Create(context.Background(), 1, "dinner", model.Intent{})
	lat, lng := 37.77, -122.42
	rest := model.Business{Name: "Spot", Latitude: &lat, Longitude: &lng}

	res, err := o.SelectRestaurant(context.Background(), 1, id, rest, "7:00 PM")
	if err != nil {
		t.Fatalf("SelectRestaurant: %v", err)
	}
	if venues.actCalls != 1 {
		t.Errorf("activity search called %d times, want 1", venues.actCalls)
	}
	if len(res.Activities) != 2 {
		t.Errorf("activities = %d, want 2", len(res.Activities))
	}
	if len(options.inserts[model.OptionActivity]) != 2 {
		t.Errorf("stored %d activity options", len(options.inserts[model.OptionActivity]))
	}
	if sessions.rows[id].ReservedTime != "7:00 PM" {
		t.Errorf("reserved time = %q", sessions.rows[id].ReservedTime)
	}
}

func TestSelectActivitiesSkipDiscardsSelection(t *testing.T) {
	o, sessions, _, _, _ := newTestOrchestrator(&fakeVenues{})

	id, _ := sessions.Create(context.Background(), 1, "dinner", model.Intent{})
	stage, err := o.SelectActivities(context.Background(), 1, id, []model.Business{{Name: "Bar"}}, true)
	if err != nil {
		t.Fatalf("SelectActivities: %v", err)
	}
	if stage != model.StageSummary {
		t.Errorf("stage = %q", stage)
	}
	if got := sessions.rows[id].Activities; len(got) != 0 {
		t.Errorf("stored activities = %v, want empty", got)
	}
}

func TestConfirmRequiresRestaurant(t *testing.T) {
	o, sessions, _, _, _ := newTestOrchestrator(&fakeVenues{})

	id, _ := sessions.Create(context.Background(), 1, "dinner", model.Intent{})
	if _, err := o.Confirm(context.Background(), 1, id, ""); err != ErrNoRestaurant {
		t.Fatalf("err = %v, want ErrNoRestaurant", err)
	}
}

func TestConfirmBuildsPersistsAndPublishes(t *testing.T) {
	o, sessions, _, itins, events := newTestOrchestrator(&fakeVenues{})

	id, _ := sessions.Create(context.Background(), 1, "dinner", model.Intent{Date: "saturday"})
	_ = sessions.SetRestaurant(context.Background(), id,
		model.Business{Name: "Trattoria", Cuisine: "Italian", Price: "$$"}, "7:00 PM")
	_ = sessions.SetActivities(context.Background(), id,
		[]model.Business{{Name: "Bar", Window: model.WindowAfter, Icon: "🍸", WalkingMinutes: 4}})

	it, err := o.Confirm(context.Background(), 1, id, "")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if it.ShareToken == "" {
		t.Error("share token not set")
	}
	if it.DateLabel != "saturday" {
		t.Errorf("date label = %q, want intent date", it.DateLabel)
	}
	if itins.saved != it || itins.sessionID != id {
		t.Errorf("persisted (%v, %d)", itins.saved, itins.sessionID)
	}
	if len(events.confirmed) != 1 {
		t.Fatalf("confirmed events = %d, want 1", len(events.confirmed))
	}
	if ev := events.confirmed[0]; ev.ItineraryID != 42 || ev.RestaurantName != "Trattoria" || ev.ActivityCount != 1 {
		t.Errorf("confirmed event = %+v", ev)
	}
	if len(events.discarded) != 1 || events.discarded[0].Reason != "confirmed" {
		t.Errorf("discarded events = %+v", events.discarded)
	}
}

func TestResetDeletesAndPublishes(t *testing.T) {
	o, sessions, _, _, events := newTestOrchestrator(&fakeVenues{})

	id, _ := sessions.Create(context.Background(), 1, "dinner", model.Intent{})
	if err := o.Reset(context.Background(), 1, id); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if _, ok := sessions.rows[id]; ok {
		t.Error("session still present after reset")
	}
	if len(events.discarded) != 1 || events.discarded[0].Reason != "reset" {
		t.Errorf("discarded events = %+v", events.discarded)
	}
}

func TestOwnershipErrorsPropagate(t *testing.T) {
	o, sessions, _, _, _ := newTestOrchestrator(&fakeVenues{})

	sentinel := errors.New("forbidden")
	sessions.getErr = sentinel
	if _, err := o.GetState(context.Background(), 1, 99); err != sentinel {
		t.Errorf("GetState err = %v, want sentinel", err)
	}
	if _, err := o.Confirm(context.Background(), 1, 99, ""); err != sentinel {
		t.Errorf("Confirm err = %v, want sentinel", err)
	}
	if err := o.Reset(context.Background(), 1, 99); err != sentinel {
		t.Errorf("Reset err = %v, want sentinel", err)
	}
}

func TestGetStateReturnsStoredOptions(t *testing.T) {
	venues := &fakeVenues{restaurants: []model.Business{{Name: "A"}}}
	o, _, _, _, _ := newTestOrchestrator(venues)

	res, err := o.Start(context.Background(), 1, "dinner", Preferences{})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	state, err := o.GetState(context.Background(), 1, res.SessionID)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if state.Session == nil || state.Session.ID != res.SessionID {
		t.Fatalf("session = %+v", state.Session)
	}
	if len(state.Restaurants) != 1 || state.Restaurants[0].Name != "A" {
		t.Errorf("restaurants = %+v", state.Restaurants)
	}
}
