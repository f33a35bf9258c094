package yelp

import (
	"testing"

	"github.com/impressmydate/backend/internal/model"
)

func TestNormalizeRestaurantDefaults(t *testing.T) {
	b := NormalizeRestaurant(RawBusiness{})

	if b.Name != "Unnamed spot" {
		t.Errorf("name = %q", b.Name)
	}
	if b.Rating != defaultRating {
		t.Errorf("rating = %v", b.Rating)
	}
	if b.Price != defaultPrice {
		t.Errorf("price = %q", b.Price)
	}
	if b.ImageURL != defaultPhotoURL {
		t.Errorf("image = %q", b.ImageURL)
	}
	if b.Address != "Address unavailable" {
		t.Errorf("address = %q", b.Address)
	}
	if len(b.Slots) == 0 {
		t.Error("no reservation slots attached")
	}
	if b.Slots[0] != "5:30 PM" || b.Slots[len(b.Slots)-1] != "8:00 PM" {
		t.Errorf("slots = %v", b.Slots)
	}
	if b.HasCoordinates() {
		t.Error("coordinates invented from nothing")
	}
}

func TestNormalizeRestaurantFields(t *testing.T) {
	raw := RawBusiness{
		ID:     "abc",
		Name:   "Trattoria Luna",
		Rating: 4.0,
		Price:  "$$$",
		Photos: []string{"https://example.com/p1.jpg"},
	}
	raw.Location.DisplayAddress = []string{"1 Main St", "Brooklyn, NY"}
	raw.Categories = append(raw.Categories, struct {
		Alias string `json:"alias"`
		Title string `json:"title"`
	}{Alias: "italian", Title: "Italian"})
	raw.Coordinates = &struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}{Latitude: 40.68, Longitude: -73.99}

	b := NormalizeRestaurant(raw)
	if b.Cuisine != "Italian" {
		t.Errorf("cuisine = %q", b.Cuisine)
	}
	if b.ImageURL != "https://example.com/p1.jpg" {
		t.Errorf("image = %q (photos fallback)", b.ImageURL)
	}
	if b.Address != "1 Main St, Brooklyn, NY" {
		t.Errorf("address = %q", b.Address)
	}
	if !b.HasCoordinates() || *b.Latitude != 40.68 {
		t.Errorf("coordinates = %v, %v", b.Latitude, b.Longitude)
	}
}

func TestClassifyActivity(t *testing.T) {
	cases := []struct {
		category string
		window   string
		icon     string
	}{
		{"Cocktail Bars", model.WindowAfter, "🍸"},
		{"Speakeasies", model.WindowAfter, "🍸"},
		{"Bookstores", model.WindowBefore, "📚"},
		{"Coffee & Tea", model.WindowBefore, "📚"},
		{"Art Galleries", model.WindowBefore, "🎨"},
		{"Museums", model.WindowBefore, "🎨"},
		{"Ice Cream & Frozen Yogurt", model.WindowAfter, "🍰"},
		{"Bakeries", model.WindowAfter, "🍰"},
		{"Parks", model.WindowBefore, "🌸"},
		{"Jazz & Blues", model.WindowAfter, "🎶"},
		{"Karaoke Bars", model.WindowAfter, "🍸"}, // "bar" group is checked first
		{"Escape Rooms", model.WindowAfter, "✨"},
		{"", model.WindowAfter, "✨"},
	}
	for _, c := range cases {
		window, icon := classifyActivity(c.category)
		if window != c.window || icon != c.icon {
			t.Errorf("classifyActivity(%q) = (%q, %q), want (%q, %q)",
				c.category, window, icon, c.window, c.icon)
		}
	}
}

func TestWalkingMinutes(t *testing.T) {
	cases := []struct {
		meters float64
		want   int
	}{
		{0, defaultWalkMinutes},
		{-5, defaultWalkMinutes},
		{1609.34, 20},     // one mile at 3 mph
		{804.67, 10},      // half a mile
		{40, 1},           // rounds to zero, clamped up
		{3218.68, 40},
	}
	for _, c := range cases {
		if got := WalkingMinutes(c.meters); got != c.want {
			t.Errorf("WalkingMinutes(%v) = %d, want %d", c.meters, got, c.want)
		}
	}
}

func TestNormalizeActivity(t *testing.T) {
	raw := RawBusiness{Name: "Velvet Lounge", Distance: 402.34}
	raw.Categories = append(raw.Categories, struct {
		Alias string `json:"alias"`
		Title string `json:"title"`
	}{Alias: "lounges", Title: "Lounges"})

	b := NormalizeActivity(raw)
	if b.Category != "Lounges" {
		t.Errorf("category = %q", b.Category)
	}
	if b.Window != model.WindowAfter || b.Icon != "🍸" {
		t.Errorf("classified as (%q, %q)", b.Window, b.Icon)
	}
	if b.WalkingMinutes != 5 {
		t.Errorf("walking minutes = %d, want 5", b.WalkingMinutes)
	}
	if len(b.Slots) != 0 {
		t.Errorf("activities must not carry reservation slots, got %v", b.Slots)
	}
}
