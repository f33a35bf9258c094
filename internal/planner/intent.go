package planner

import (
    "regexp"
    "strings"

    "github.com/impressmydate/backend/internal/model"
)

// Prompt parsing is deliberately shallow: the conversational provider does
// the real language understanding.  We only pull out the few hints that
// shape the query (budget tier, a clock time, a trailing "in <place>") and
// leave everything else empty.

var (
    clockRe  = regexp.MustCompile(`(?i)\b(1[0-2]|[1-9])(:[0-5][0-9])?\s*(am|pm)\b`)
    tierRe   = regexp.MustCompile(`\${1,4}`)
    placeRe  = regexp.MustCompile(`(?i)\bin\s+([A-Za-z][A-Za-z .'-]{1,40})$`)
    weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday", "tonight", "tomorrow", "this weekend"}
)

// parseIntent extracts optional location/date/time/budget hints from the
// free-text prompt.  Absent hints stay empty strings.
func parseIntent(prompt string) model.Intent {
    var intent model.Intent
    lower := strings.ToLower(prompt)

    if m := tierRe.FindString(prompt); m != "" {
        intent.Budget = m
    } else if strings.Contains(lower, "cheap") || strings.Contains(lower, "budget") {
        intent.Budget = "$"
    } else if strings.Contains(lower, "fancy") || strings.Contains(lower, "upscale") || strings.Contains(lower, "splurge") {
        intent.Budget = "$$$"
    }

    if m := clockRe.FindString(prompt); m != "" {
        intent.Time = strings.ToUpper(strings.TrimSpace(m))
    }

    for _, d := range weekdays {
        if strings.Contains(lower, d) {
            intent.Date = d
            break
        }
    }

    if m := placeRe.FindStringSubmatch(strings.TrimRight(prompt, " .!?")); len(m) == 2 {
        intent.Location = strings.TrimSpace(m[1])
    }

    return intent
}
