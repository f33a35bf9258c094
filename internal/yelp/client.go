// Package yelp talks to the Yelp conversational AI API and normalizes its
// loosely-typed responses into the application's venue snapshots.  The
// upstream contract is schema-unstable: the business list has been observed
// in three different locations of the payload, so extraction walks an
// ordered list of paths and degrades to an empty list instead of erroring.
package yelp

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "time"
)

// Client issues natural-language queries against the /ai/chat/v2 endpoint.
// A single client is shared by all requests; it holds no per-conversation
// state beyond the chat_id callers pass back in.
type Client struct {
    baseURL string
    apiKey  string
    http    *http.Client
}

// NewClient builds a Client.  The timeout bounds one whole query; a slow
// upstream call is abandoned and treated by callers as "no results" rather
// than propagated as a hard failure.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
    return &Client{
        baseURL: baseURL,
        apiKey:  apiKey,
        http:    &http.Client{Timeout: timeout},
    }
}

// RawBusiness is the provider's venue record as received.  Every field is
// optional; the transformer fills documented defaults for whatever is
// missing.
type RawBusiness struct {
    ID          string  `json:"id"`
    Name        string  `json:"name"`
    Rating      float64 `json:"rating"`
    ReviewCount int     `json:"review_count"`
    Price       string  `json:"price"`
    ImageURL    string  `json:"image_url"`
    Photos      []string `json:"photos"`
    Location    struct {
        Address1       string   `json:"address1"`
        City           string   `json:"city"`
        DisplayAddress []string `json:"display_address"`
    } `json:"location"`
    Coordinates *struct {
        Latitude  float64 `json:"latitude"`
        Longitude float64 `json:"longitude"`
    } `json:"coordinates"`
    Categories []struct {
        Alias string `json:"alias"`
        Title string `json:"title"`
    } `json:"categories"`
    Distance float64 `json:"distance"` // meters from the search origin
}

// ChatResponse is the normalized result of one conversational query.
type ChatResponse struct {
    Text       string
    ChatID     string
    Businesses []RawBusiness
}

// chatRequest mirrors the provider's request contract.
type chatRequest struct {
    Query          string `json:"query"`
    ChatID         string `json:"chat_id,omitempty"`
    RequestContext struct {
        ReturnBusinesses bool `json:"return_businesses"`
    } `json:"request_context"`
}

// chatEnvelope captures every place the provider has been observed to put
// the text answer and the business list.
type chatEnvelope struct {
    ChatID     string        `json:"chat_id"`
    Text       string        `json:"text"`
    Businesses []RawBusiness `json:"businesses"`
    Response   struct {
        Text       string        `json:"text"`
        Businesses []RawBusiness `json:"businesses"`
    } `json:"response"`
    Entities []struct {
        Businesses []RawBusiness `json:"businesses"`
    } `json:"entities"`
}

// Query sends one natural-language query, optionally continuing an existing
// conversation via chatID.  Network errors, non-2xx statuses and undecodable
// bodies are returned as errors; a decodable body with no recognizable
// business list is NOT an error and yields an empty slice.
func (c *Client) Query(ctx context.Context, query, chatID string) (*ChatResponse, error) {
    reqBody := chatRequest{Query: query, ChatID: chatID}
    reqBody.RequestContext.ReturnBusinesses = true
    payload, err := json.Marshal(reqBody)
    if err != nil {
        return nil, fmt.Errorf("marshal chat request: %w", err)
    }

    req, err := http.NewRequestWithContext(ctx, http.MethodPost,
        c.baseURL+"/ai/chat/v2", bytes.NewReader(payload))
    if err != nil {
        return nil, fmt.Errorf("build chat request: %w", err)
    }
    req.Header.Set("Authorization", "Bearer "+c.apiKey)
    req.Header.Set("Content-Type", "application/json")

    resp, err := c.http.Do(req)
    if err != nil {
        return nil, fmt.Errorf("call chat API: %w", err)
    }
    defer resp.Body.Close()

    body, err := io.ReadAll(resp.Body)
    if err != nil {
        return nil, fmt.Errorf("read chat response: %w", err)
    }
    if resp.StatusCode < 200 || resp.StatusCode > 299 {
        return nil, fmt.Errorf("chat API error %d: %s", resp.StatusCode, string(body))
    }

    var env chatEnvelope
    if err := json.Unmarshal(body, &env); err != nil {
        return nil, fmt.Errorf("parse chat response: %w", err)
    }

    out := &ChatResponse{
        Text:       env.Text,
        ChatID:     env.ChatID,
        Businesses: extractBusinesses(env),
    }
    if out.Text == "" {
        out.Text = env.Response.Text
    }
    return out, nil
}

// extractBusinesses walks the known payload shapes in order: top-level
// `businesses`, then `response.businesses`, then `entities[0].businesses`.
// No match yields an empty, non-nil slice.
func extractBusinesses(env chatEnvelope) []RawBusiness {
    if len(env.Businesses) > 0 {
        return env.Businesses
    }
    if len(env.Response.Businesses) > 0 {
        return env.Response.Businesses
    }
    if len(env.Entities) > 0 && len(env.Entities[0].Businesses) > 0 {
        return env.Entities[0].Businesses
    }
    return []RawBusiness{}
}
