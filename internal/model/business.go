package model

// Business is the normalized snapshot of a third-party venue record
// (restaurant or activity) after it has passed through the Yelp response
// transformer.  Every required field is guaranteed to be populated with a
// documented default, so downstream code never sees a missing name, rating,
// price or photo.  Snapshots are embedded as JSON in plan sessions and
// itineraries and stored per-row in session_options.
//
// Fields:
//  ID             – provider business id (may be empty for degraded rows).
//  Name           – display name.
//  Rating         – star rating, defaulted when the provider omits it.
//  ReviewCount    – number of reviews, zero when unknown.
//  Price          – price tier "$".."$$$$", defaulted to "$$".
//  ImageURL       – photo URL, defaulted to a stock image.
//  Address        – single-line street address.
//  City           – city name when the provider supplies one.
//  Latitude       – coordinate, nil when the provider omits it.
//  Longitude      – coordinate, nil when the provider omits it.
//  Cuisine        – first category title (restaurants).
//  Category       – primary category title used for classification (activities).
//  Slots          – fixed reservation time slots (restaurants only).
//  Window         – "before" or "after" the meal (activities only).
//  Icon           – emoji icon chosen by category keyword match (activities only).
//  WalkingMinutes – estimated walk from the restaurant (activities only).
type Business struct {
    ID             string   `json:"id,omitempty"`
    Name           string   `json:"name"`
    Rating         float64  `json:"rating"`
    ReviewCount    int      `json:"review_count,omitempty"`
    Price          string   `json:"price"`
    ImageURL       string   `json:"image_url"`
    Address        string   `json:"address"`
    City           string   `json:"city,omitempty"`
    Latitude       *float64 `json:"latitude,omitempty"`
    Longitude      *float64 `json:"longitude,omitempty"`
    Cuisine        string   `json:"cuisine,omitempty"`
    Category       string   `json:"category,omitempty"`
    Slots          []string `json:"slots,omitempty"`
    Window         string   `json:"window,omitempty"`
    Icon           string   `json:"icon,omitempty"`
    WalkingMinutes int      `json:"walking_minutes,omitempty"`
}

// Activity time-window buckets.  The partition is fixed at selection time and
// drives timeline placement relative to the reservation.
const (
    WindowBefore = "before"
    WindowAfter  = "after"
)

// HasCoordinates reports whether both coordinates are present.  Nearby
// activity searches are only issued when the restaurant snapshot carries
// coordinates.
func (b Business) HasCoordinates() bool {
    return b.Latitude != nil && b.Longitude != nil
}
