package repository

import (
    "context"
    "database/sql"
    "encoding/json"

    "github.com/impressmydate/backend/internal/model"
)

// SessionRepo provides CRUD operations for plan_sessions.  A session is the
// transient record of one in-progress planning flow; every read and write is
// scoped to the owning user.  Snapshot columns (intent, restaurant,
// activities) are stored as JSON text.  All timestamps are UTC.
type SessionRepo struct {
    db *sql.DB
}

// NewSessionRepo returns a new SessionRepo bound to the given database.
func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions that
// span this repository and others (e.g. itinerary insert + session delete).
func (r *SessionRepo) DB() *sql.DB { return r.db }

// Create inserts a new session in stage "loading" and returns its ID.
func (r *SessionRepo) Create(ctx context.Context, userID uint64, prompt string, intent model.Intent) (uint64, error) {
    intentJSON, err := json.Marshal(intent)
    if err != nil {
        return 0, err
    }
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO plan_sessions (user_id, prompt, intent, stage) VALUES (?,?,?,?)`,
        userID, prompt, string(intentJSON), model.StageLoading)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetForUser loads a session by ID and verifies ownership.  It returns
// ErrNotFound when no session with the ID exists and ErrForbidden when the
// session belongs to a different user, so handlers can keep "missing" and
// "not yours" distinguishable from an empty result.
func (r *SessionRepo) GetForUser(ctx context.Context, sessionID, userID uint64) (*model.PlanSession, error) {
    const q = `SELECT id, user_id, prompt, intent, stage, restaurant, reserved_time, activities, chat_id, created_at, updated_at
               FROM plan_sessions WHERE id = ?`
    var (
        s          model.PlanSession
        intentJSON string
        restJSON   sql.NullString
        reserved   sql.NullString
        actsJSON   sql.NullString
        chatID     sql.NullString
    )
    err := r.db.QueryRowContext(ctx, q, sessionID).Scan(
        &s.ID, &s.UserID, &s.Prompt, &intentJSON, &s.Stage,
        &restJSON, &reserved, &actsJSON, &chatID, &s.CreatedAt, &s.UpdatedAt,
    )
    if err == sql.ErrNoRows {
        return nil, ErrNotFound
    }
    if err != nil {
        return nil, err
    }
    if s.UserID != userID {
        return nil, ErrForbidden
    }
    if err := json.Unmarshal([]byte(intentJSON), &s.Intent); err != nil {
        return nil, err
    }
    if restJSON.Valid && restJSON.String != "" {
        var b model.Business
        if err := json.Unmarshal([]byte(restJSON.String), &b); err != nil {
            return nil, err
        }
        s.Restaurant = &b
    }
    if reserved.Valid {
        s.ReservedTime = reserved.String
    }
    s.Activities = []model.Business{}
    if actsJSON.Valid && actsJSON.String != "" {
        if err := json.Unmarshal([]byte(actsJSON.String), &s.Activities); err != nil {
            return nil, err
        }
    }
    if chatID.Valid {
        s.ChatID = chatID.String
    }
    return &s, nil
}

// SetChatID stores the provider conversation token for later multi-turn use.
func (r *SessionRepo) SetChatID(ctx context.Context, sessionID uint64, chatID string) error {
    _, err := r.db.ExecContext(ctx,
        `UPDATE plan_sessions SET chat_id = ? WHERE id = ?`, chatID, sessionID)
    return err
}

// AdvanceStage moves the session to the given stage.  The flow is strictly
// forward; callers are responsible for only passing the next stage.
func (r *SessionRepo) AdvanceStage(ctx context.Context, sessionID uint64, stage model.Stage) error {
    _, err := r.db.ExecContext(ctx,
        `UPDATE plan_sessions SET stage = ? WHERE id = ?`, stage, sessionID)
    return err
}

// SetRestaurant stores the chosen restaurant snapshot and reservation time
// and advances the session to stage "activities" in the same statement.
func (r *SessionRepo) SetRestaurant(ctx context.Context, sessionID uint64, restaurant model.Business, reservedTime string) error {
    snap, err := json.Marshal(restaurant)
    if err != nil {
        return err
    }
    _, err = r.db.ExecContext(ctx,
        `UPDATE plan_sessions SET restaurant = ?, reserved_time = ?, stage = ? WHERE id = ?`,
        string(snap), reservedTime, model.StageActivities, sessionID)
    return err
}

// SetActivities stores the chosen activity list (possibly empty) and
// advances the session to stage "summary".  An empty list overwrites any
// previous selection so skipping is idempotent.
func (r *SessionRepo) SetActivities(ctx context.Context, sessionID uint64, activities []model.Business) error {
    if activities == nil {
        activities = []model.Business{}
    }
    acts, err := json.Marshal(activities)
    if err != nil {
        return err
    }
    _, err = r.db.ExecContext(ctx,
        `UPDATE plan_sessions SET activities = ?, stage = ? WHERE id = ?`,
        string(acts), model.StageSummary, sessionID)
    return err
}

// Delete removes the session row.  Option snapshots are cleaned up
// asynchronously by the queue consumer.
func (r *SessionRepo) Delete(ctx context.Context, sessionID uint64) error {
    _, err := r.db.ExecContext(ctx, `DELETE FROM plan_sessions WHERE id = ?`, sessionID)
    return err
}

// DeleteTx removes the session row within an existing transaction.  Used by
// itinerary confirmation so the session disappears atomically with the
// itinerary insert.
func (r *SessionRepo) DeleteTx(ctx context.Context, tx *sql.Tx, sessionID uint64) error {
    _, err := tx.ExecContext(ctx, `DELETE FROM plan_sessions WHERE id = ?`, sessionID)
    return err
}
