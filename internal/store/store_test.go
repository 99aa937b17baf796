package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/shape"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testPreset(name string) *Preset {
	return &Preset{
		ID:                uuid.NewString(),
		Name:              name,
		Strategy:          "cpu",
		ParticleCount:     10000,
		BlendRate:         0.08,
		ColorBlendRate:    0.05,
		InteractionRadius: 60,
		RepelGain:         45,
		AttractGain:       18,
		Colors: shape.Palette{
			gesture.LabelHeart: {R: 1, G: 0.2, B: 0.4},
		},
	}
}

func TestPresetRepository_CreateAndGet(t *testing.T) {
	s := testStore(t)
	p := testPreset("calm")

	if err := s.Presets().Create(p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.Presets().GetByID(p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "calm" || got.ParticleCount != 10000 {
		t.Errorf("got %+v", got)
	}
	c, ok := got.Colors[gesture.LabelHeart]
	if !ok {
		t.Fatal("palette row not persisted")
	}
	if c.R != 1 || c.G != 0.2 || c.B != 0.4 {
		t.Errorf("palette color = %+v", c)
	}

	byName, err := s.Presets().GetByName("calm")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if byName.ID != p.ID {
		t.Errorf("GetByName ID = %q, want %q", byName.ID, p.ID)
	}
}

func TestPresetRepository_GetMissing(t *testing.T) {
	s := testStore(t)
	if _, err := s.Presets().GetByID("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestPresetRepository_List(t *testing.T) {
	s := testStore(t)
	for _, name := range []string{"zeta", "alpha"} {
		if err := s.Presets().Create(testPreset(name)); err != nil {
			t.Fatal(err)
		}
	}

	presets, err := s.Presets().List()
	if err != nil {
		t.Fatal(err)
	}
	if len(presets) != 2 {
		t.Fatalf("List returned %d presets, want 2", len(presets))
	}
	if presets[0].Name != "alpha" || presets[1].Name != "zeta" {
		t.Error("List not ordered by name")
	}
}

func TestPresetRepository_Update(t *testing.T) {
	s := testStore(t)
	p := testPreset("tweak")
	if err := s.Presets().Create(p); err != nil {
		t.Fatal(err)
	}

	p.ParticleCount = 250000
	p.Strategy = "pingpong"
	p.Colors = shape.Palette{
		gesture.LabelSaturn: {R: 0.9, G: 0.7, B: 0.1},
	}
	if err := s.Presets().Update(p); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := s.Presets().GetByID(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ParticleCount != 250000 || got.Strategy != "pingpong" {
		t.Errorf("update not applied: %+v", got)
	}
	if _, ok := got.Colors[gesture.LabelHeart]; ok {
		t.Error("old palette rows not replaced")
	}
	if _, ok := got.Colors[gesture.LabelSaturn]; !ok {
		t.Error("new palette row missing")
	}

	missing := testPreset("ghost")
	if err := s.Presets().Update(missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update missing: err = %v, want ErrNotFound", err)
	}
}

func TestPresetRepository_Delete(t *testing.T) {
	s := testStore(t)
	p := testPreset("gone")
	if err := s.Presets().Create(p); err != nil {
		t.Fatal(err)
	}

	if err := s.Presets().Delete(p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Presets().GetByID(p.ID); !errors.Is(err, ErrNotFound) {
		t.Error("preset still present after delete")
	}

	// Palette rows cascade with the preset.
	var n int
	if err := s.DB().QueryRow(
		`SELECT COUNT(*) FROM preset_colors WHERE preset_id = ?`, p.ID,
	).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("%d orphaned palette rows", n)
	}

	if err := s.Presets().Delete(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}
