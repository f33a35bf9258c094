package repository

import (
    "context"
    "database/sql"
    "encoding/json"

    "github.com/impressmydate/backend/internal/model"
)

// ItineraryRepo provides CRUD operations for confirmed itineraries.  Venue
// snapshots and the timeline are embedded as JSON so the row is
// self-contained; an itinerary never references session rows, which are
// gone by the time it exists.
type ItineraryRepo struct {
    db *sql.DB
}

// NewItineraryRepo returns a new ItineraryRepo bound to the given database.
func NewItineraryRepo(db *sql.DB) *ItineraryRepo { return &ItineraryRepo{db: db} }

// CreateAndDiscardSession inserts the itinerary and deletes the originating
// session in a single transaction.  Confirmation is the one transition that
// creates durable value, so it is the one place two writes are wrapped
// atomically.  On success the itinerary's ID and CreatedAt are populated.
func (r *ItineraryRepo) CreateAndDiscardSession(ctx context.Context, it *model.Itinerary, sessionID uint64) error {
    restJSON, err := json.Marshal(it.Restaurant)
    if err != nil {
        return err
    }
    acts := it.Activities
    if acts == nil {
        acts = []model.Business{}
    }
    actsJSON, err := json.Marshal(acts)
    if err != nil {
        return err
    }
    tlJSON, err := json.Marshal(it.Timeline)
    if err != nil {
        return err
    }

    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const ins = `INSERT INTO itineraries
        (user_id, headline, date_label, restaurant, activities, timeline, cost_estimate, status, share_token)
        VALUES (?,?,?,?,?,?,?,?,?)`
    res, err := tx.ExecContext(ctx, ins,
        it.UserID, it.Headline, it.DateLabel, string(restJSON), string(actsJSON),
        string(tlJSON), it.CostEstimate, model.StatusUpcoming, it.ShareToken)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    it.ID = uint64(id)
    it.Status = model.StatusUpcoming

    if _, err := tx.ExecContext(ctx, `DELETE FROM plan_sessions WHERE id = ?`, sessionID); err != nil {
        return err
    }

    // Query back created_at so the response carries the DB timestamp.
    if err := tx.QueryRowContext(ctx,
        `SELECT created_at FROM itineraries WHERE id = ?`, it.ID).Scan(&it.CreatedAt); err != nil {
        return err
    }

    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

const itineraryCols = `id, user_id, headline, date_label, restaurant, activities, timeline,
    cost_estimate, status, rating, comment, share_token, created_at`

// scanItinerary decodes one row into a model.Itinerary.
func scanItinerary(row interface {
    Scan(dest ...interface{}) error
}) (model.Itinerary, error) {
    var (
        it       model.Itinerary
        restJSON string
        actsJSON string
        tlJSON   string
        rating   sql.NullString
        comment  sql.NullString
    )
    err := row.Scan(&it.ID, &it.UserID, &it.Headline, &it.DateLabel,
        &restJSON, &actsJSON, &tlJSON, &it.CostEstimate, &it.Status,
        &rating, &comment, &it.ShareToken, &it.CreatedAt)
    if err != nil {
        return it, err
    }
    if err := json.Unmarshal([]byte(restJSON), &it.Restaurant); err != nil {
        return it, err
    }
    it.Activities = []model.Business{}
    if actsJSON != "" {
        if err := json.Unmarshal([]byte(actsJSON), &it.Activities); err != nil {
            return it, err
        }
    }
    it.Timeline = []model.TimelineBlock{}
    if tlJSON != "" {
        if err := json.Unmarshal([]byte(tlJSON), &it.Timeline); err != nil {
            return it, err
        }
    }
    if rating.Valid {
        v := rating.String
        it.Rating = &v
    }
    if comment.Valid {
        v := comment.String
        it.Comment = &v
    }
    return it, nil
}

// ListByUser returns the user's itineraries, newest first.
func (r *ItineraryRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Itinerary, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+itineraryCols+` FROM itineraries WHERE user_id = ? ORDER BY created_at DESC`, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Itinerary, 0)
    for rows.Next() {
        it, err := scanItinerary(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, it)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// GetByIDForUser returns a single itinerary, enforcing ownership.  A missing
// row yields ErrNotFound; a row owned by another user yields ErrForbidden.
func (r *ItineraryRepo) GetByIDForUser(ctx context.Context, itineraryID, userID uint64) (*model.Itinerary, error) {
    row := r.db.QueryRowContext(ctx,
        `SELECT `+itineraryCols+` FROM itineraries WHERE id = ?`, itineraryID)
    it, err := scanItinerary(row)
    if err == sql.ErrNoRows {
        return nil, ErrNotFound
    }
    if err != nil {
        return nil, err
    }
    if it.UserID != userID {
        return nil, ErrForbidden
    }
    return &it, nil
}

// GetByShareToken returns an itinerary by its public share token.  No
// ownership check: share links are intentionally readable by anyone who
// holds the token.
func (r *ItineraryRepo) GetByShareToken(ctx context.Context, token string) (*model.Itinerary, error) {
    row := r.db.QueryRowContext(ctx,
        `SELECT `+itineraryCols+` FROM itineraries WHERE share_token = ?`, token)
    it, err := scanItinerary(row)
    if err == sql.ErrNoRows {
        return nil, ErrNotFound
    }
    if err != nil {
        return nil, err
    }
    return &it, nil
}

// SubmitFeedback stores the rating and optional comment and flips status to
// "past".  Ownership is checked before the write so a feedback attempt on
// someone else's itinerary fails with ErrForbidden, not a silent no-op.
func (r *ItineraryRepo) SubmitFeedback(ctx context.Context, itineraryID, userID uint64, rating string, comment string) error {
    var ownerID uint64
    err := r.db.QueryRowContext(ctx,
        `SELECT user_id FROM itineraries WHERE id = ?`, itineraryID).Scan(&ownerID)
    if err == sql.ErrNoRows {
        return ErrNotFound
    }
    if err != nil {
        return err
    }
    if ownerID != userID {
        return ErrForbidden
    }
    var c sql.NullString
    if comment != "" {
        c = sql.NullString{String: comment, Valid: true}
    }
    _, err = r.db.ExecContext(ctx,
        `UPDATE itineraries SET rating = ?, comment = ?, status = ? WHERE id = ?`,
        rating, c, model.StatusPast, itineraryID)
    return err
}
