package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	if c.StageCount() != 10 {
		t.Errorf("StageCount() = %d, expected 10", c.StageCount())
	}

	carnivores := map[string]bool{"tiger": true, "lion": true, "crocodile": true, "python": true, "bear": true}
	for _, a := range c.Animals() {
		if a.Carnivore != carnivores[a.ID] {
			t.Errorf("animal %q Carnivore = %v, expected %v", a.ID, a.Carnivore, carnivores[a.ID])
		}
	}

	s1, ok := c.Stage(1)
	if !ok {
		t.Fatal("Stage(1) not found")
	}
	if len(s1.Animals) != 2 || s1.Animals[0] != "turtle" || s1.Animals[1] != "tiger" {
		t.Errorf("Stage(1).Animals = %v, expected [turtle tiger]", s1.Animals)
	}
	if s1.Goal.X != 1180 || s1.Goal.Y != 546 {
		t.Errorf("Stage(1).Goal = %+v, expected (1180, 546)", s1.Goal)
	}

	s10, _ := c.Stage(10)
	if !s10.HazardFloor || s10.HazardY <= 0 {
		t.Errorf("Stage(10) hazard = %v/%v, expected enabled", s10.HazardFloor, s10.HazardY)
	}

	if _, ok := c.Stage(0); ok {
		t.Error("Stage(0) should not exist")
	}
	if _, ok := c.Stage(11); ok {
		t.Error("Stage(11) should not exist")
	}
}

func TestAnimalHelpers(t *testing.T) {
	a := Animal{ID: "croc", Grid: []string{"2211", "0110"}}

	cols, rows := a.Size()
	if cols != 4 || rows != 2 {
		t.Errorf("Size() = %dx%d, expected 4x2", cols, rows)
	}
	if a.MarkedCells() != 6 {
		t.Errorf("MarkedCells() = %d, expected 6", a.MarkedCells())
	}
	if a.HeadCells() != 2 {
		t.Errorf("HeadCells() = %d, expected 2", a.HeadCells())
	}
	if a.At(0, 1) != CellEmpty || a.At(1, 1) != CellBody || a.At(9, 9) != CellEmpty {
		t.Error("At() returned unexpected markers")
	}
	if a.DisplayName() != "croc" {
		t.Errorf("DisplayName() = %q, expected id fallback", a.DisplayName())
	}
}

func TestTerrainBox(t *testing.T) {
	b := Terrain{X: 250, Y: 600, W: 504, H: 108}.Box()
	if b.X != -2 || b.Y != 546 || b.Right() != 502 {
		t.Errorf("Box() = %+v, expected top-left (-2, 546)", b)
	}
}

func TestValidationErrors(t *testing.T) {
	plank := Animal{ID: "plank", Grid: []string{"11111"}}
	stage := func(animals ...string) Stage {
		return Stage{ID: 1, Animals: animals, Terrain: []Terrain{{X: 100, Y: 600, W: 200, H: 50}}}
	}

	tests := []struct {
		name    string
		animals []Animal
		stages  []Stage
		want    error
		substr  string
	}{
		{
			name:    "ragged rows",
			animals: []Animal{{ID: "bad", Grid: []string{"11", "1"}}},
			stages:  []Stage{stage("bad")},
			want:    ErrInvalidAnimal,
		},
		{
			name:    "no marked cells",
			animals: []Animal{{ID: "ghost", Grid: []string{"000"}}},
			stages:  []Stage{stage("ghost")},
			want:    ErrInvalidAnimal,
		},
		{
			name:    "carnivore without head",
			animals: []Animal{{ID: "wolf", Carnivore: true, Grid: []string{"111"}}},
			stages:  []Stage{stage("wolf")},
			want:    ErrInvalidAnimal,
		},
		{
			name:    "bad marker",
			animals: []Animal{{ID: "x", Grid: []string{"1x1"}}},
			stages:  []Stage{stage("x")},
			want:    ErrInvalidAnimal,
		},
		{
			name:    "duplicate animal id",
			animals: []Animal{plank, plank},
			stages:  []Stage{stage("plank")},
			want:    ErrInvalidAnimal,
		},
		{
			name:    "unknown animal",
			animals: []Animal{plank},
			stages:  []Stage{{ID: 1, Animals: []string{"yak"}}},
			want:    ErrUnknownAnimal,
			substr:  `stage 1: unknown animal "yak"`,
		},
		{
			name:    "non contiguous ids",
			animals: []Animal{plank},
			stages:  []Stage{stage("plank"), {ID: 3, Animals: []string{"plank"}}},
			want:    ErrInvalidStage,
		},
		{
			name:    "hazard without line",
			animals: []Animal{plank},
			stages:  []Stage{{ID: 1, Animals: []string{"plank"}, HazardFloor: true}},
			want:    ErrInvalidStage,
		},
		{
			name:    "zero sized terrain",
			animals: []Animal{plank},
			stages:  []Stage{{ID: 1, Animals: []string{"plank"}, Terrain: []Terrain{{X: 1, Y: 1}}}},
			want:    ErrInvalidStage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.animals, tt.stages)
			if !errors.Is(err, tt.want) {
				t.Fatalf("New() error = %v, expected %v", err, tt.want)
			}
			if tt.substr != "" && !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("error %q should contain %q", err.Error(), tt.substr)
			}
		})
	}
}

func TestNewSortsStages(t *testing.T) {
	plank := Animal{ID: "plank", Grid: []string{"1"}}
	c, err := New([]Animal{plank}, []Stage{
		{ID: 2, Name: "second", Animals: []string{"plank"}},
		{ID: 1, Name: "first", Animals: []string{"plank"}},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s, _ := c.Stage(1)
	if s.Name != "first" {
		t.Errorf("Stage(1).Name = %q, expected first", s.Name)
	}
}

func TestLoadTOMLAndYAMLFiles(t *testing.T) {
	dir := t.TempDir()

	animals := filepath.Join(dir, "animals.toml")
	animalsTOML := `
[[animals]]
id = "plank"
name = "Plank"
grid = ["11111"]

[[animals]]
id = "shark"
carnivore = true
grid = ["2111"]
`
	if err := os.WriteFile(animals, []byte(animalsTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	stages := filepath.Join(dir, "stages.yml")
	stagesYAML := `
stages:
  - id: 1
    name: Pier
    animals: [plank, shark]
    terrain:
      - {x: 200, y: 600, w: 400, h: 100}
    goal: {x: 1100, y: 550}
`
	if err := os.WriteFile(stages, []byte(stagesYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(animals, stages)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	shark, ok := c.Animal("shark")
	if !ok || !shark.Carnivore {
		t.Errorf("Animal(shark) = %+v, %v, expected carnivore", shark, ok)
	}
	s, _ := c.Stage(1)
	if s.Goal.X != 1100 || len(s.Terrain) != 1 {
		t.Errorf("Stage(1) = %+v, expected goal x 1100 and one terrain", s)
	}
}

func TestLoadRejectsUnknownKeysAndExtensions(t *testing.T) {
	dir := t.TempDir()

	typo := filepath.Join(dir, "animals.yaml")
	if err := os.WriteFile(typo, []byte("animals:\n  - id: a\n    gird: [\"1\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(typo, ""); err == nil {
		t.Error("Load() with unknown yaml key should fail")
	}

	tomlTypo := filepath.Join(dir, "animals.toml")
	if err := os.WriteFile(tomlTypo, []byte("[[animals]]\nid = \"a\"\ngird = [\"1\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tomlTypo, ""); err == nil {
		t.Error("Load() with unknown toml key should fail")
	}

	other := filepath.Join(dir, "animals.json")
	if err := os.WriteFile(other, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(other, ""); err == nil {
		t.Error("Load() with unsupported extension should fail")
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml"), ""); err == nil {
		t.Error("Load() with missing file should fail")
	}
}
