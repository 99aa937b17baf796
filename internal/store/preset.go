package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/shape"
)

// Preset is a named bundle of engine tuning and palette overrides.
type Preset struct {
	ID                string
	Name              string
	Strategy          string
	ParticleCount     int
	BlendRate         float64
	ColorBlendRate    float64
	InteractionRadius float64
	RepelGain         float64
	AttractGain       float64
	Colors            shape.Palette
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PresetRepository provides CRUD operations for presets.
type PresetRepository struct {
	db *sql.DB
}

// Presets returns the preset repository for this store.
func (s *Store) Presets() *PresetRepository {
	return &PresetRepository{db: s.db}
}

// Create inserts a new preset and its palette rows.
func (r *PresetRepository) Create(p *Preset) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO presets (id, name, strategy, particle_count, blend_rate,
			color_blend_rate, interaction_radius, repel_gain, attract_gain,
			created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Strategy, p.ParticleCount, p.BlendRate,
		p.ColorBlendRate, p.InteractionRadius, p.RepelGain, p.AttractGain,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if err := insertColors(tx, p.ID, p.Colors); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID retrieves a preset and its palette by ID.
func (r *PresetRepository) GetByID(id string) (*Preset, error) {
	return r.getWhere(`id = ?`, id)
}

// GetByName retrieves a preset and its palette by name.
func (r *PresetRepository) GetByName(name string) (*Preset, error) {
	return r.getWhere(`name = ?`, name)
}

func (r *PresetRepository) getWhere(where string, arg any) (*Preset, error) {
	p := &Preset{}
	err := r.db.QueryRow(
		`SELECT id, name, strategy, particle_count, blend_rate,
			color_blend_rate, interaction_radius, repel_gain, attract_gain,
			created_at, updated_at
		 FROM presets WHERE `+where,
		arg,
	).Scan(&p.ID, &p.Name, &p.Strategy, &p.ParticleCount, &p.BlendRate,
		&p.ColorBlendRate, &p.InteractionRadius, &p.RepelGain, &p.AttractGain,
		&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if p.Colors, err = r.loadColors(p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns all presets, palettes included, ordered by name.
func (r *PresetRepository) List() ([]*Preset, error) {
	rows, err := r.db.Query(
		`SELECT id, name, strategy, particle_count, blend_rate,
			color_blend_rate, interaction_radius, repel_gain, attract_gain,
			created_at, updated_at
		 FROM presets ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []*Preset
	for rows.Next() {
		p := &Preset{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Strategy, &p.ParticleCount,
			&p.BlendRate, &p.ColorBlendRate, &p.InteractionRadius,
			&p.RepelGain, &p.AttractGain, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range presets {
		if p.Colors, err = r.loadColors(p.ID); err != nil {
			return nil, err
		}
	}
	return presets, nil
}

// Update rewrites a preset's tuning and replaces its palette rows.
func (r *PresetRepository) Update(p *Preset) error {
	p.UpdatedAt = time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE presets SET name = ?, strategy = ?, particle_count = ?,
			blend_rate = ?, color_blend_rate = ?, interaction_radius = ?,
			repel_gain = ?, attract_gain = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, p.Strategy, p.ParticleCount, p.BlendRate, p.ColorBlendRate,
		p.InteractionRadius, p.RepelGain, p.AttractGain, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(`DELETE FROM preset_colors WHERE preset_id = ?`, p.ID); err != nil {
		return err
	}
	if err := insertColors(tx, p.ID, p.Colors); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a preset; its palette rows cascade.
func (r *PresetRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM presets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PresetRepository) loadColors(presetID string) (shape.Palette, error) {
	rows, err := r.db.Query(
		`SELECT label, r, g, b FROM preset_colors WHERE preset_id = ?`,
		presetID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	palette := shape.Palette{}
	for rows.Next() {
		var label string
		var cr, cg, cb float64
		if err := rows.Scan(&label, &cr, &cg, &cb); err != nil {
			return nil, err
		}
		palette[gesture.Label(label)] = shape.RGB{
			R: float32(cr), G: float32(cg), B: float32(cb),
		}
	}
	return palette, rows.Err()
}

func insertColors(tx *sql.Tx, presetID string, palette shape.Palette) error {
	for label, c := range palette {
		_, err := tx.Exec(
			`INSERT INTO preset_colors (preset_id, label, r, g, b)
			 VALUES (?, ?, ?, ?, ?)`,
			presetID, string(label), float64(c.R), float64(c.G), float64(c.B),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
