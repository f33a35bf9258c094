package planner

import (
    "errors"
    "fmt"
    "math"
    "strconv"
    "strings"

    "github.com/impressmydate/backend/internal/model"
)

// ErrNoRestaurant is returned when itinerary assembly is attempted without
// a selected restaurant.  The restaurant is mandatory; activities are not.
var ErrNoRestaurant = errors.New("no restaurant selected")

const (
    minutesPerDay = 24 * 60

    // Timeline spacing around the reservation.  The i-th of N
    // before-activities sits (N-i)*60+30 minutes ahead of the meal; the
    // i-th after-activity sits 90+i*60 minutes past it.
    beforeStepMinutes = 60
    beforeGapMinutes  = 30
    afterLeadMinutes  = 90
    afterStepMinutes  = 60

    defaultReservation = "7:00 PM"
)

// Per-tier base costs for the heuristic estimate, plus the flat per-activity
// add-on.  The reported range spans 80% to 120% of the sum.
var tierBaseCost = map[string]int{
    "$":    30,
    "$$":   60,
    "$$$":  100,
    "$$$$": 150,
}

const (
    unknownTierCost = 60
    perActivityCost = 25
)

// parseClock converts a 12-hour label like "7:30 PM" or "11 AM" into
// minutes since midnight.  Parsing is forgiving about case and spacing.
func parseClock(s string) (int, error) {
    t := strings.ToUpper(strings.TrimSpace(s))
    var meridiem string
    switch {
    case strings.HasSuffix(t, "PM"):
        meridiem = "PM"
    case strings.HasSuffix(t, "AM"):
        meridiem = "AM"
    default:
        return 0, fmt.Errorf("clock %q: missing AM/PM", s)
    }
    t = strings.TrimSpace(strings.TrimSuffix(t, meridiem))

    hourStr, minStr := t, "0"
    if i := strings.Index(t, ":"); i >= 0 {
        hourStr, minStr = t[:i], t[i+1:]
    }
    hour, err := strconv.Atoi(strings.TrimSpace(hourStr))
    if err != nil || hour < 1 || hour > 12 {
        return 0, fmt.Errorf("clock %q: bad hour", s)
    }
    minute, err := strconv.Atoi(strings.TrimSpace(minStr))
    if err != nil || minute < 0 || minute > 59 {
        return 0, fmt.Errorf("clock %q: bad minute", s)
    }
    if hour == 12 {
        hour = 0
    }
    if meridiem == "PM" {
        hour += 12
    }
    return hour*60 + minute, nil
}

// formatClock renders minutes-since-midnight as a 12-hour label with no
// leading zero on the hour.
func formatClock(mins int) string {
    mins = ((mins % minutesPerDay) + minutesPerDay) % minutesPerDay
    hour := mins / 60
    minute := mins % 60
    meridiem := "AM"
    if hour >= 12 {
        meridiem = "PM"
    }
    h12 := hour % 12
    if h12 == 0 {
        h12 = 12
    }
    return fmt.Sprintf("%d:%02d %s", h12, minute, meridiem)
}

// addMinutes offsets a clock value, wrapping across midnight in both
// directions so the nominal timeline stays on a single 24-hour dial.
func addMinutes(mins, delta int) int {
    return ((mins+delta)%minutesPerDay + minutesPerDay) % minutesPerDay
}

// mealLabel classifies the reservation into a human meal name.  The label
// only feeds subtitles like "Before Dinner"; it has no effect on ordering
// or cost.
func mealLabel(mins int) string {
    switch {
    case mins < 11*60:
        return "Breakfast"
    case mins < 12*60:
        return "Brunch"
    case mins < 16*60:
        return "Lunch"
    default:
        return "Dinner"
    }
}

// costEstimate derives the "$MIN-MAX" heuristic range from the restaurant
// price tier and the number of selected activities.
func costEstimate(price string, activityCount int) string {
    base, ok := tierBaseCost[price]
    if !ok {
        base = unknownTierCost
    }
    total := float64(base + perActivityCost*activityCount)
    low := int(math.Round(total * 0.8))
    high := int(math.Round(total * 1.2))
    return fmt.Sprintf("$%d-%d", low, high)
}

// BuildItinerary assembles the ordered timeline, cost estimate and headline
// for a confirmed plan.  Activities are split by their fixed before/after
// window; before-activities land earliest-first, the restaurant sits at the
// exact reservation time, and after-activities fan out past it.  A missing
// restaurant fails fast rather than producing a timeline with a hole in it.
func BuildItinerary(userID uint64, restaurant *model.Business, activities []model.Business, reservedTime, dateLabel string) (*model.Itinerary, error) {
    if restaurant == nil {
        return nil, ErrNoRestaurant
    }
    if reservedTime == "" {
        reservedTime = defaultReservation
    }
    mealMins, err := parseClock(reservedTime)
    if err != nil {
        // An unparseable label came from the client; fall back to the
        // default slot rather than rejecting a confirmed plan.
        mealMins, _ = parseClock(defaultReservation)
    }
    meal := mealLabel(mealMins)

    var before, after []model.Business
    for _, a := range activities {
        if a.Window == model.WindowBefore {
            before = append(before, a)
        } else {
            after = append(after, a)
        }
    }

    timeline := make([]model.TimelineBlock, 0, len(activities)+1)
    n := len(before)
    for i, a := range before {
        offset := (n-i)*beforeStepMinutes + beforeGapMinutes
        timeline = append(timeline, model.TimelineBlock{
            Time:       formatClock(addMinutes(mealMins, -offset)),
            Icon:       a.Icon,
            Title:      a.Name,
            Subtitle:   fmt.Sprintf("Before %s · %d min walk", meal, a.WalkingMinutes),
            Address:    a.Address,
            Directions: a.HasCoordinates(),
        })
    }

    cuisine := restaurant.Cuisine
    if cuisine == "" {
        cuisine = "Date"
    }
    timeline = append(timeline, model.TimelineBlock{
        Time:       formatClock(mealMins),
        Icon:       "🍽️",
        Title:      restaurant.Name,
        Subtitle:   fmt.Sprintf("%s Reservation · %s", meal, cuisine),
        Address:    restaurant.Address,
        Directions: restaurant.HasCoordinates(),
    })

    for i, a := range after {
        offset := afterLeadMinutes + i*afterStepMinutes
        timeline = append(timeline, model.TimelineBlock{
            Time:       formatClock(addMinutes(mealMins, offset)),
            Icon:       a.Icon,
            Title:      a.Name,
            Subtitle:   fmt.Sprintf("After %s · %d min walk", meal, a.WalkingMinutes),
            Address:    a.Address,
            Directions: a.HasCoordinates(),
        })
    }

    if dateLabel == "" {
        dateLabel = "Your next date"
    }

    return &model.Itinerary{
        UserID:       userID,
        Headline:     cuisine + " Night",
        DateLabel:    dateLabel,
        Restaurant:   *restaurant,
        Activities:   activities,
        Timeline:     timeline,
        CostEstimate: costEstimate(restaurant.Price, len(activities)),
        Status:       model.StatusUpcoming,
    }, nil
}
