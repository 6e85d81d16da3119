package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/kalil1010/ai-stylist/internal/analysis"
	"github.com/kalil1010/ai-stylist/internal/colour"
	"github.com/kalil1010/ai-stylist/internal/outfit"
)

var (
	// ErrNotFound is returned when no palette has the requested id.
	ErrNotFound = errors.New("saved palette not found")

	// ErrUserRequired is returned when a palette is saved without an owner.
	ErrUserRequired = errors.New("a signed-in user is required to save palettes")

	// ErrNotOwner is returned when a user writes to another user's palette.
	ErrNotOwner = errors.New("palette belongs to another user")

	// ErrInvalidPalette wraps validation failures in Save.
	ErrInvalidPalette = errors.New("invalid palette")
)

// Source records where a saved palette was created.
type Source string

const (
	SourceAnalyzer Source = "analyzer"
	SourceCloset   Source = "closet"
)

// SavedPalette is a user's stored analysis: its base colour, the extracted
// colours, the derived rich palette and optionally an outfit plan.
type SavedPalette struct {
	ID            string             `json:"id"`
	UserID        string             `json:"userId"`
	BaseHex       string             `json:"baseHex"`
	DominantHexes []string           `json:"dominantHexes"`
	RichMatches   colour.RichPalette `json:"richMatches"`
	Plan          map[string]string  `json:"plan,omitempty"`
	Source        Source             `json:"source"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// FromAnalysis prepares a palette for saving from an analysis result.
func FromAnalysis(userID string, res *analysis.Result, plan outfit.Plan, source Source) SavedPalette {
	p := SavedPalette{
		UserID:        userID,
		BaseHex:       res.PrimaryHex,
		DominantHexes: res.DominantHexes,
		Source:        source,
	}
	if res.RichMatches != nil {
		p.RichMatches = *res.RichMatches
	}
	if plan.Len() > 0 {
		p.Plan = plan.Hexes()
	}
	return p
}

// PaletteStore reads and writes saved palettes.
type PaletteStore struct {
	db     *sql.DB
	logger hclog.Logger
	now    func() time.Time
}

// NewPaletteStore wraps an open, migrated database.
func NewPaletteStore(database *sql.DB, logger hclog.Logger) *PaletteStore {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &PaletteStore{db: database, logger: logger, now: time.Now}
}

// Save inserts a palette, or replaces the stored one with the same id.
// Missing ids are generated, the base colour is validated and normalised, and
// the rich palette is derived from the base colour when not supplied.
func (s *PaletteStore) Save(ctx context.Context, p SavedPalette) (SavedPalette, error) {
	if strings.TrimSpace(p.UserID) == "" {
		return SavedPalette{}, ErrUserRequired
	}

	base, err := colour.NormalizeHex(p.BaseHex)
	if err != nil {
		return SavedPalette{}, fmt.Errorf("%w: base colour: %w", ErrInvalidPalette, err)
	}
	p.BaseHex = base

	p.DominantHexes = analysis.SanitizeHexes(p.DominantHexes)
	if p.DominantHexes == nil {
		p.DominantHexes = []string{}
	}

	if p.RichMatches.Base == "" {
		if p.RichMatches, err = colour.Rich(base); err != nil {
			return SavedPalette{}, err
		}
	}

	if len(p.Plan) > 0 {
		plan, err := outfit.PlanFromHexes(p.Plan)
		if err != nil {
			return SavedPalette{}, fmt.Errorf("%w: plan: %w", ErrInvalidPalette, err)
		}
		p.Plan = plan.Hexes()
	} else {
		p.Plan = nil
	}

	switch p.Source {
	case "":
		p.Source = SourceAnalyzer
	case SourceAnalyzer, SourceCloset:
	default:
		return SavedPalette{}, fmt.Errorf("%w: unknown source %q", ErrInvalidPalette, p.Source)
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := s.now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	dominant, err := json.Marshal(p.DominantHexes)
	if err != nil {
		return SavedPalette{}, fmt.Errorf("encode dominant colours: %w", err)
	}
	rich, err := json.Marshal(p.RichMatches)
	if err != nil {
		return SavedPalette{}, fmt.Errorf("encode rich palette: %w", err)
	}
	var plan sql.NullString
	if p.Plan != nil {
		data, err := json.Marshal(p.Plan)
		if err != nil {
			return SavedPalette{}, fmt.Errorf("encode plan: %w", err)
		}
		plan = sql.NullString{String: string(data), Valid: true}
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO saved_palettes(id, user_id, base_hex, dominant_hexes, rich_matches, plan, source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			base_hex = excluded.base_hex,
			dominant_hexes = excluded.dominant_hexes,
			rich_matches = excluded.rich_matches,
			plan = excluded.plan,
			source = excluded.source,
			updated_at = excluded.updated_at
		WHERE saved_palettes.user_id = excluded.user_id`,
		p.ID, p.UserID, p.BaseHex, string(dominant), string(rich), plan, string(p.Source),
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return SavedPalette{}, fmt.Errorf("save palette %s: %w", p.ID, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return SavedPalette{}, fmt.Errorf("save palette %s: %w", p.ID, ErrNotOwner)
	}

	s.logger.Debug("saved palette", "id", p.ID, "user", p.UserID, "base", p.BaseHex)
	return s.Get(ctx, p.ID)
}

const selectPalette = `SELECT id, user_id, base_hex, dominant_hexes, rich_matches, plan, source, created_at, updated_at FROM saved_palettes`

// Get returns one palette by id.
func (s *PaletteStore) Get(ctx context.Context, id string) (SavedPalette, error) {
	row := s.db.QueryRowContext(ctx, selectPalette+" WHERE id = ?", id)
	p, err := scanPalette(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SavedPalette{}, ErrNotFound
		}
		return SavedPalette{}, fmt.Errorf("get palette %s: %w", id, err)
	}
	return p, nil
}

// ListForUser returns a user's palettes, newest first.
func (s *PaletteStore) ListForUser(ctx context.Context, userID string) ([]SavedPalette, error) {
	rows, err := s.db.QueryContext(ctx,
		selectPalette+" WHERE user_id = ? ORDER BY created_at DESC, rowid DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list palettes: %w", err)
	}
	defer rows.Close()

	palettes := make([]SavedPalette, 0)
	for rows.Next() {
		p, err := scanPalette(rows)
		if err != nil {
			return nil, fmt.Errorf("scan palette row: %w", err)
		}
		palettes = append(palettes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate palette rows: %w", err)
	}
	return palettes, nil
}

// Delete removes a palette by id.
func (s *PaletteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM saved_palettes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete palette %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read deleted palette count: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPalette(row scanner) (SavedPalette, error) {
	var (
		p                 SavedPalette
		dominant, rich    string
		plan              sql.NullString
		source            string
		created, modified string
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.BaseHex, &dominant, &rich, &plan, &source, &created, &modified); err != nil {
		return SavedPalette{}, err
	}
	p.Source = Source(source)

	if err := json.Unmarshal([]byte(dominant), &p.DominantHexes); err != nil {
		return SavedPalette{}, fmt.Errorf("decode dominant colours: %w", err)
	}
	if err := json.Unmarshal([]byte(rich), &p.RichMatches); err != nil {
		return SavedPalette{}, fmt.Errorf("decode rich palette: %w", err)
	}
	if plan.Valid && plan.String != "" {
		if err := json.Unmarshal([]byte(plan.String), &p.Plan); err != nil {
			return SavedPalette{}, fmt.Errorf("decode plan: %w", err)
		}
	}

	var err error
	if p.CreatedAt, err = parseTime(created); err != nil {
		return SavedPalette{}, err
	}
	if p.UpdatedAt, err = parseTime(modified); err != nil {
		return SavedPalette{}, err
	}
	return p, nil
}

// Timestamps are stored as fixed-width UTC text so they sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
