package planner

import (
	"fmt"
	"testing"

	"github.com/impressmydate/backend/internal/model"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"7:00 PM", 19 * 60, true},
		{"7:30 pm", 19*60 + 30, true},
		{"12:00 AM", 0, true},
		{"12:30 PM", 12*60 + 30, true},
		{"11 AM", 11 * 60, true},
		{" 5:45 PM ", 17*60 + 45, true},
		{"19:00", 0, false},
		{"13:00 PM", 0, false},
		{"7:75 PM", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, err := parseClock(c.in)
		if c.ok && err != nil {
			t.Errorf("parseClock(%q): unexpected error %v", c.in, err)
			continue
		}
		if !c.ok {
			if err == nil {
				t.Errorf("parseClock(%q): expected error, got %d", c.in, got)
			}
			continue
		}
		if got != c.want {
			t.Errorf("parseClock(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "12:00 AM"},
		{30, "12:30 AM"},
		{12 * 60, "12:00 PM"},
		{19 * 60, "7:00 PM"},
		{23*60 + 59, "11:59 PM"},
		{9*60 + 5, "9:05 AM"},
	}
	for _, c := range cases {
		if got := formatClock(c.in); got != c.want {
			t.Errorf("formatClock(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestAddMinutesWraps(t *testing.T) {
	// 11:30 PM plus 90 minutes lands at 1:00 AM on the same dial.
	if got := formatClock(addMinutes(23*60+30, 90)); got != "1:00 AM" {
		t.Errorf("forward wrap = %q, want 1:00 AM", got)
	}
	// 12:30 AM minus 90 minutes lands at 11:00 PM.
	if got := formatClock(addMinutes(30, -90)); got != "11:00 PM" {
		t.Errorf("backward wrap = %q, want 11:00 PM", got)
	}
}

func TestCostEstimate(t *testing.T) {
	cases := []struct {
		price      string
		activities int
		want       string
	}{
		{"$", 0, "$24-36"},
		{"$$", 0, "$48-72"},
		{"$$$", 2, "$120-180"},
		{"$$$$", 1, "$140-210"},
		{"", 1, "$68-102"},       // unknown tier uses the default base
		{"$$$$$", 0, "$48-72"},   // out-of-range tier also defaults
	}
	for _, c := range cases {
		if got := costEstimate(c.price, c.activities); got != c.want {
			t.Errorf("costEstimate(%q, %d) = %q, want %q", c.price, c.activities, got, c.want)
		}
	}
}

func TestCostEstimateMonotonic(t *testing.T) {
	parse := func(s string) (low, high int) {
		if _, err := fmt.Sscanf(s, "$%d-%d", &low, &high); err != nil {
			t.Fatalf("unparseable estimate %q: %v", s, err)
		}
		return low, high
	}
	for _, tier := range []string{"$", "$$", "$$$", "$$$$"} {
		prevLow, prevHigh := -1, -1
		for n := 0; n <= 5; n++ {
			low, high := parse(costEstimate(tier, n))
			if low < 0 || high < low {
				t.Errorf("tier %s, %d activities: bad range %d-%d", tier, n, low, high)
			}
			if low <= prevLow || high <= prevHigh {
				t.Errorf("tier %s: range not increasing at %d activities", tier, n)
			}
			prevLow, prevHigh = low, high
		}
	}
}

func act(name, window, icon string, walk int) model.Business {
	return model.Business{Name: name, Window: window, Icon: icon, WalkingMinutes: walk}
}

func TestBuildItineraryOrdering(t *testing.T) {
	rest := &model.Business{Name: "Trattoria Luna", Cuisine: "Italian", Price: "$$", Address: "1 Main St"}
	activities := []model.Business{
		act("Corner Books", model.WindowBefore, "📚", 5),
		act("City Gallery", model.WindowBefore, "🎨", 8),
		act("Velvet Bar", model.WindowAfter, "🍸", 4),
	}

	it, err := BuildItinerary(7, rest, activities, "7:00 PM", "Friday")
	if err != nil {
		t.Fatalf("BuildItinerary: %v", err)
	}

	wantTimes := []string{"4:30 PM", "5:30 PM", "7:00 PM", "8:30 PM"}
	if len(it.Timeline) != len(wantTimes) {
		t.Fatalf("timeline has %d blocks, want %d", len(it.Timeline), len(wantTimes))
	}
	for i, want := range wantTimes {
		if it.Timeline[i].Time != want {
			t.Errorf("block %d at %q, want %q", i, it.Timeline[i].Time, want)
		}
	}

	if it.Timeline[2].Title != "Trattoria Luna" || it.Timeline[2].Icon != "🍽️" {
		t.Errorf("restaurant block = %+v", it.Timeline[2])
	}
	if it.Timeline[0].Subtitle != "Before Dinner · 5 min walk" {
		t.Errorf("before subtitle = %q", it.Timeline[0].Subtitle)
	}
	if it.Timeline[3].Subtitle != "After Dinner · 4 min walk" {
		t.Errorf("after subtitle = %q", it.Timeline[3].Subtitle)
	}
	if it.Headline != "Italian Night" {
		t.Errorf("headline = %q", it.Headline)
	}
	if it.DateLabel != "Friday" {
		t.Errorf("date label = %q", it.DateLabel)
	}
	if it.CostEstimate != "$108-162" { // 60 + 3*25 = 135
		t.Errorf("cost = %q", it.CostEstimate)
	}
	if it.Status != model.StatusUpcoming {
		t.Errorf("status = %q", it.Status)
	}
}

func TestBuildItineraryMidnightWrap(t *testing.T) {
	rest := &model.Business{Name: "Late Bite", Price: "$"}
	activities := []model.Business{act("Night Cap", model.WindowAfter, "🍸", 3)}

	it, err := BuildItinerary(1, rest, activities, "11:30 PM", "")
	if err != nil {
		t.Fatalf("BuildItinerary: %v", err)
	}
	if len(it.Timeline) != 2 {
		t.Fatalf("timeline has %d blocks, want 2", len(it.Timeline))
	}
	if it.Timeline[0].Time != "11:30 PM" {
		t.Errorf("restaurant at %q", it.Timeline[0].Time)
	}
	if it.Timeline[1].Time != "1:00 AM" {
		t.Errorf("after block at %q, want 1:00 AM", it.Timeline[1].Time)
	}
}

func TestBuildItineraryNoActivities(t *testing.T) {
	rest := &model.Business{Name: "Solo Spot", Cuisine: "Sushi", Price: "$$$", Address: "2 Pier Rd"}

	it, err := BuildItinerary(3, rest, nil, "6:30 PM", "")
	if err != nil {
		t.Fatalf("BuildItinerary: %v", err)
	}
	if len(it.Timeline) != 1 {
		t.Fatalf("timeline has %d blocks, want 1", len(it.Timeline))
	}
	if it.Timeline[0].Time != "6:30 PM" {
		t.Errorf("block at %q, want 6:30 PM", it.Timeline[0].Time)
	}
	if it.CostEstimate != "$80-120" {
		t.Errorf("cost = %q", it.CostEstimate)
	}
	if it.DateLabel != "Your next date" {
		t.Errorf("default date label = %q", it.DateLabel)
	}
}

func TestBuildItineraryDefaults(t *testing.T) {
	rest := &model.Business{Name: "Nameless Kitchen"}

	// Empty reservation falls back to 7:00 PM; empty cuisine yields the
	// generic headline.
	it, err := BuildItinerary(2, rest, nil, "", "")
	if err != nil {
		t.Fatalf("BuildItinerary: %v", err)
	}
	if it.Timeline[0].Time != "7:00 PM" {
		t.Errorf("default reservation at %q", it.Timeline[0].Time)
	}
	if it.Headline != "Date Night" {
		t.Errorf("headline = %q", it.Headline)
	}

	// Garbage reservation labels also fall back instead of failing.
	it, err = BuildItinerary(2, rest, nil, "whenever", "")
	if err != nil {
		t.Fatalf("BuildItinerary with bad time: %v", err)
	}
	if it.Timeline[0].Time != "7:00 PM" {
		t.Errorf("fallback reservation at %q", it.Timeline[0].Time)
	}
}

func TestBuildItineraryRequiresRestaurant(t *testing.T) {
	if _, err := BuildItinerary(1, nil, nil, "7:00 PM", ""); err != ErrNoRestaurant {
		t.Fatalf("err = %v, want ErrNoRestaurant", err)
	}
}

func TestMealLabel(t *testing.T) {
	cases := []struct {
		reserved string
		want     string
	}{
		{"9:00 AM", "Breakfast"},
		{"11:30 AM", "Brunch"},
		{"1:00 PM", "Lunch"},
		{"7:00 PM", "Dinner"},
	}
	for _, c := range cases {
		mins, err := parseClock(c.reserved)
		if err != nil {
			t.Fatalf("parseClock(%q): %v", c.reserved, err)
		}
		if got := mealLabel(mins); got != c.want {
			t.Errorf("mealLabel(%s) = %q, want %q", c.reserved, got, c.want)
		}
	}
}
