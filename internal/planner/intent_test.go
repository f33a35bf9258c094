package planner

import "testing"

func TestParseIntent(t *testing.T) {
	cases := []struct {
		prompt   string
		location string
		date     string
		time     string
		budget   string
	}{
		{
			prompt:   "romantic italian dinner saturday at 7:30 pm in Brooklyn",
			location: "Brooklyn",
			date:     "saturday",
			time:     "7:30 PM",
		},
		{
			prompt: "something cheap and fun tonight",
			date:   "tonight",
			budget: "$",
		},
		{
			prompt: "a fancy anniversary dinner",
			budget: "$$$",
		},
		{
			prompt: "sushi around $$ would be great",
			budget: "$$",
		},
		{
			prompt: "surprise me",
		},
	}
	for _, c := range cases {
		got := parseIntent(c.prompt)
		if got.Location != c.location {
			t.Errorf("%q: location = %q, want %q", c.prompt, got.Location, c.location)
		}
		if got.Date != c.date {
			t.Errorf("%q: date = %q, want %q", c.prompt, got.Date, c.date)
		}
		if got.Time != c.time {
			t.Errorf("%q: time = %q, want %q", c.prompt, got.Time, c.time)
		}
		if got.Budget != c.budget {
			t.Errorf("%q: budget = %q, want %q", c.prompt, got.Budget, c.budget)
		}
	}
}
