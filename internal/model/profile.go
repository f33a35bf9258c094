package model

import "time"

// Budget tiers accepted on a profile.  They mirror the provider's price
// notation so prompt building can pass them through unchanged.
var BudgetTiers = []string{"$", "$$", "$$$", "$$$$"}

// ValidBudget reports whether b is one of the four budget tiers.
func ValidBudget(b string) bool {
    for _, t := range BudgetTiers {
        if b == t {
            return true
        }
    }
    return false
}

// UserProfile stores per-user planning preferences.  There is exactly one
// profile per user; it is upserted on save and never deleted by the core
// flow.  The server row is the source of truth; any client-side copy is a
// projection reconciled on load.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owning user (unique).
//  Location  – default search location.
//  Budget    – budget tier "$".."$$$$".
//  Dietary   – dietary restriction tags.
//  Vibes     – vibe/style tags.
//  UpdatedAt – last upsert timestamp.
type UserProfile struct {
    ID        uint64    `json:"id"`         // user_profiles.id
    UserID    uint64    `json:"user_id"`    // user_profiles.user_id
    Location  string    `json:"location"`   // user_profiles.location
    Budget    string    `json:"budget"`     // user_profiles.budget
    Dietary   []string  `json:"dietary"`    // user_profiles.dietary (JSON)
    Vibes     []string  `json:"vibes"`      // user_profiles.vibes (JSON)
    UpdatedAt time.Time `json:"updated_at"` // user_profiles.updated_at
}
