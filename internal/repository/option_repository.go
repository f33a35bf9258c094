package repository

import (
    "context"
    "database/sql"
    "encoding/json"

    "github.com/impressmydate/backend/internal/model"
)

// OptionRepo stores the denormalized venue snapshots offered to a session.
// Rows are insert-only and exist only while the owning session exists; the
// queue consumer removes them after the session is discarded.
type OptionRepo struct {
    db *sql.DB
}

// NewOptionRepo returns a new OptionRepo bound to the given database.
func NewOptionRepo(db *sql.DB) *OptionRepo { return &OptionRepo{db: db} }

// BulkInsert writes all snapshots for a session in a single statement,
// preserving list order via the position column.  Kind is "restaurant" or
// "activity".  Passing an empty slice has no effect and returns nil.
func (r *OptionRepo) BulkInsert(ctx context.Context, sessionID uint64, kind string, options []model.Business) error {
    if len(options) == 0 {
        return nil
    }
    query := `INSERT INTO session_options (session_id, kind, position, payload) VALUES `
    args := make([]interface{}, 0, len(options)*4)
    for i, b := range options {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?, ?)"
        payload, err := json.Marshal(b)
        if err != nil {
            return err
        }
        args = append(args, sessionID, kind, i, string(payload))
    }
    _, err := r.db.ExecContext(ctx, query, args...)
    return err
}

// ListBySession returns the snapshots of one kind for a session in their
// original order.  An empty slice is returned when no options were stored
// (e.g. the AI returned nothing).
func (r *OptionRepo) ListBySession(ctx context.Context, sessionID uint64, kind string) ([]model.Business, error) {
    const q = `SELECT payload FROM session_options
               WHERE session_id = ? AND kind = ?
               ORDER BY position`
    rows, err := r.db.QueryContext(ctx, q, sessionID, kind)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Business, 0)
    for rows.Next() {
        var payload string
        if err := rows.Scan(&payload); err != nil {
            return nil, err
        }
        var b model.Business
        if err := json.Unmarshal([]byte(payload), &b); err != nil {
            return nil, err
        }
        out = append(out, b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// DeleteBySession removes every snapshot row belonging to a discarded
// session and reports how many were deleted.  Invoked by the cleanup
// consumer, not by the request path.
func (r *OptionRepo) DeleteBySession(ctx context.Context, sessionID uint64) (int64, error) {
    res, err := r.db.ExecContext(ctx,
        `DELETE FROM session_options WHERE session_id = ?`, sessionID)
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}
