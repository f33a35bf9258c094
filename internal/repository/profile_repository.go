package repository

import (
    "context"
    "database/sql"
    "encoding/json"

    "github.com/impressmydate/backend/internal/model"
)

// ProfileRepo persists per-user planning preferences.  One row per user,
// upserted by unique user_id: look up the existing row, update if found,
// insert otherwise.
type ProfileRepo struct {
    db *sql.DB
}

// NewProfileRepo returns a new ProfileRepo bound to the given database.
func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

// GetByUser loads the profile for a user.  ErrNotFound is returned when the
// user has never saved one.
func (r *ProfileRepo) GetByUser(ctx context.Context, userID uint64) (*model.UserProfile, error) {
    const q = `SELECT id, user_id, location, budget, dietary, vibes, updated_at
               FROM user_profiles WHERE user_id = ? LIMIT 1`
    var (
        p       model.UserProfile
        dietary string
        vibes   string
    )
    err := r.db.QueryRowContext(ctx, q, userID).Scan(
        &p.ID, &p.UserID, &p.Location, &p.Budget, &dietary, &vibes, &p.UpdatedAt)
    if err == sql.ErrNoRows {
        return nil, ErrNotFound
    }
    if err != nil {
        return nil, err
    }
    p.Dietary = []string{}
    if dietary != "" {
        if err := json.Unmarshal([]byte(dietary), &p.Dietary); err != nil {
            return nil, err
        }
    }
    p.Vibes = []string{}
    if vibes != "" {
        if err := json.Unmarshal([]byte(vibes), &p.Vibes); err != nil {
            return nil, err
        }
    }
    return &p, nil
}

// Upsert saves the profile for a user.  The lookup-then-write pair is not
// wrapped in a transaction; user_id carries a unique index so a racing
// double-save degrades to last write wins.
func (r *ProfileRepo) Upsert(ctx context.Context, p *model.UserProfile) error {
    if p.Dietary == nil {
        p.Dietary = []string{}
    }
    if p.Vibes == nil {
        p.Vibes = []string{}
    }
    dietary, err := json.Marshal(p.Dietary)
    if err != nil {
        return err
    }
    vibes, err := json.Marshal(p.Vibes)
    if err != nil {
        return err
    }

    var existingID uint64
    err = r.db.QueryRowContext(ctx,
        `SELECT id FROM user_profiles WHERE user_id = ? LIMIT 1`, p.UserID).Scan(&existingID)
    switch {
    case err == sql.ErrNoRows:
        res, err := r.db.ExecContext(ctx,
            `INSERT INTO user_profiles (user_id, location, budget, dietary, vibes) VALUES (?,?,?,?,?)`,
            p.UserID, p.Location, p.Budget, string(dietary), string(vibes))
        if err != nil {
            return err
        }
        id, err := res.LastInsertId()
        if err != nil {
            return err
        }
        p.ID = uint64(id)
        return nil
    case err != nil:
        return err
    default:
        _, err = r.db.ExecContext(ctx,
            `UPDATE user_profiles SET location = ?, budget = ?, dietary = ?, vibes = ? WHERE id = ?`,
            p.Location, p.Budget, string(dietary), string(vibes), existingID)
        if err != nil {
            return err
        }
        p.ID = existingID
        return nil
    }
}
