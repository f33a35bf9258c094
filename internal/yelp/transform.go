package yelp

import (
    "context"
    "fmt"
    "math"
    "strings"

    "github.com/impressmydate/backend/internal/model"
)

// Defaults applied when the provider omits a field.  Rendering downstream
// assumes every required field is populated, so the transformer never lets
// a gap through.
const (
    defaultRating   = 4.5
    defaultPrice    = "$$"
    defaultPhotoURL = "https://images.unsplash.com/photo-1414235077428-338989a2e8c0?w=800"

    metersPerMile      = 1609.34
    walkMinutesPerMile = 20 // 3 mph walking speed
    defaultWalkMinutes = 10
)

// defaultSlots are the fixed reservation time slots attached to every
// restaurant snapshot.
func defaultSlots() []string {
    return []string{"5:30 PM", "6:00 PM", "6:30 PM", "7:00 PM", "7:30 PM", "8:00 PM"}
}

// activityClass is one keyword group of the ordered classification table.
type activityClass struct {
    keywords []string
    window   string
    icon     string
}

// classes is checked in order and the first match wins; the groups are
// mutually exclusive so ties cannot occur.
var classes = []activityClass{
    {[]string{"bar", "cocktail", "lounge", "speakeasy", "pub"}, model.WindowAfter, "🍸"},
    {[]string{"book", "coffee", "cafe", "tea"}, model.WindowBefore, "📚"},
    {[]string{"art", "gallery", "museum"}, model.WindowBefore, "🎨"},
    {[]string{"dessert", "ice cream", "bakery", "chocolate"}, model.WindowAfter, "🍰"},
    {[]string{"park", "garden", "walk"}, model.WindowBefore, "🌸"},
    {[]string{"music", "jazz", "comedy", "karaoke"}, model.WindowAfter, "🎶"},
}

// classifyActivity buckets an activity into a before/after window and picks
// its emoji from the primary category string.  Unmatched categories default
// to after-dinner with a generic icon.
func classifyActivity(category string) (window, icon string) {
    lower := strings.ToLower(category)
    for _, cl := range classes {
        for _, kw := range cl.keywords {
            if strings.Contains(lower, kw) {
                return cl.window, cl.icon
            }
        }
    }
    return model.WindowAfter, "✨"
}

// WalkingMinutes converts a raw distance in meters to walking minutes at
// 3 mph (minutes ≈ miles × 20).  Zero or negative distance means the
// provider gave us nothing useful, so the fixed default applies.
func WalkingMinutes(meters float64) int {
    if meters <= 0 {
        return defaultWalkMinutes
    }
    minutes := int(math.Round(meters / metersPerMile * walkMinutesPerMile))
    if minutes < 1 {
        minutes = 1
    }
    return minutes
}

// normalizeCommon maps the fields shared by restaurants and activities,
// applying defaults for anything missing.
func normalizeCommon(raw RawBusiness) model.Business {
    b := model.Business{
        ID:          raw.ID,
        Name:        raw.Name,
        Rating:      raw.Rating,
        ReviewCount: raw.ReviewCount,
        Price:       raw.Price,
        ImageURL:    raw.ImageURL,
        Address:     raw.Location.Address1,
        City:        raw.Location.City,
    }
    if b.Name == "" {
        b.Name = "Unnamed spot"
    }
    if b.Rating == 0 {
        b.Rating = defaultRating
    }
    if b.Price == "" {
        b.Price = defaultPrice
    }
    if b.ImageURL == "" && len(raw.Photos) > 0 {
        b.ImageURL = raw.Photos[0]
    }
    if b.ImageURL == "" {
        b.ImageURL = defaultPhotoURL
    }
    if b.Address == "" && len(raw.Location.DisplayAddress) > 0 {
        b.Address = strings.Join(raw.Location.DisplayAddress, ", ")
    }
    if b.Address == "" {
        b.Address = "Address unavailable"
    }
    if raw.Coordinates != nil {
        lat, lng := raw.Coordinates.Latitude, raw.Coordinates.Longitude
        b.Latitude = &lat
        b.Longitude = &lng
    }
    return b
}

// NormalizeRestaurant maps a raw provider record into a restaurant
// snapshot: cuisine from the first category title and the fixed reservation
// slots attached.
func NormalizeRestaurant(raw RawBusiness) model.Business {
    b := normalizeCommon(raw)
    if len(raw.Categories) > 0 {
        b.Cuisine = raw.Categories[0].Title
    }
    b.Slots = defaultSlots()
    return b
}

// NormalizeActivity maps a raw provider record into an activity snapshot:
// classified into a time window with an icon, plus estimated walking
// minutes from the restaurant.
func NormalizeActivity(raw RawBusiness) model.Business {
    b := normalizeCommon(raw)
    if len(raw.Categories) > 0 {
        b.Category = raw.Categories[0].Title
    }
    b.Window, b.Icon = classifyActivity(b.Category)
    b.WalkingMinutes = WalkingMinutes(raw.Distance)
    return b
}

// FindRestaurants runs a restaurant query built from the user's prompt plus
// budget and location context and returns normalized snapshots along with
// the conversation token for follow-up turns.
func (c *Client) FindRestaurants(ctx context.Context, prompt, location, budget, chatID string) ([]model.Business, string, error) {
    query := prompt
    if budget != "" {
        query += fmt.Sprintf(" (budget around %s)", budget)
    }
    if location != "" {
        query += fmt.Sprintf(" in %s", location)
    }
    resp, err := c.Query(ctx, query, chatID)
    if err != nil {
        return nil, "", err
    }
    out := make([]model.Business, 0, len(resp.Businesses))
    for _, raw := range resp.Businesses {
        out = append(out, NormalizeRestaurant(raw))
    }
    return out, resp.ChatID, nil
}

// FindActivitiesNear runs a nearby-activity query around the given
// coordinates within the radius (meters) and returns normalized snapshots.
func (c *Client) FindActivitiesNear(ctx context.Context, lat, lng float64, radiusMeters int) ([]model.Business, error) {
    query := fmt.Sprintf(
        "fun date activities like bars, dessert spots, bookstores or galleries within %d meters of latitude %f, longitude %f",
        radiusMeters, lat, lng)
    resp, err := c.Query(ctx, query, "")
    if err != nil {
        return nil, err
    }
    out := make([]model.Business, 0, len(resp.Businesses))
    for _, raw := range resp.Businesses {
        out = append(out, NormalizeActivity(raw))
    }
    return out, nil
}
