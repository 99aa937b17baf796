package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Presets table - named engine tuning bundles
		`CREATE TABLE IF NOT EXISTS presets (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			strategy TEXT NOT NULL DEFAULT 'cpu' CHECK(strategy IN ('cpu', 'pingpong')),
			particle_count INTEGER NOT NULL DEFAULT 30000,
			blend_rate REAL NOT NULL DEFAULT 0.08,
			color_blend_rate REAL NOT NULL DEFAULT 0.05,
			interaction_radius REAL NOT NULL DEFAULT 60,
			repel_gain REAL NOT NULL DEFAULT 45,
			attract_gain REAL NOT NULL DEFAULT 18,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Palette table - per-gesture-label color overrides for a preset
		`CREATE TABLE IF NOT EXISTS preset_colors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			preset_id TEXT NOT NULL REFERENCES presets(id) ON DELETE CASCADE,
			label TEXT NOT NULL,
			r REAL NOT NULL,
			g REAL NOT NULL,
			b REAL NOT NULL,
			UNIQUE(preset_id, label)
		)`,

		// Settings table - application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_preset_colors_preset_id ON preset_colors(preset_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
