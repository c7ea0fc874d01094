package resource

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qingyunzi/xiuxian/server/game/item"
)

// Load returns the balance tables, starting from the embedded defaults and
// overriding each table with its JSON file under dir when present. An empty
// dir returns the defaults unchanged. A missing file keeps the default for
// that table; a file that exists but does not parse is an error.
func Load(dir string) (*Tables, error) {
	t := Default()
	if dir == "" {
		return t, nil
	}
	loaders := []func(*Tables, string) error{
		loadGrottoLevels,
		loadHerbs,
		loadEnhancements,
		loadPetTemplates,
		loadRecipes,
		loadRealms,
		loadKnownEffects,
		loadRarities,
	}
	for _, fn := range loaders {
		if err := fn(t, dir); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// loadTable reads path into out. Returns (false, nil) when the file does not
// exist.
func loadTable[T any](path string, out *T) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("resource: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("resource: parse %s: %w", path, err)
	}
	return true, nil
}

func loadGrottoLevels(t *Tables, dir string) error {
	var v []GrottoLevel
	ok, err := loadTable(filepath.Join(dir, "grotto_levels.json"), &v)
	if ok {
		t.GrottoLevels = v
	}
	return err
}

func loadHerbs(t *Tables, dir string) error {
	var v []HerbConfig
	ok, err := loadTable(filepath.Join(dir, "herbs.json"), &v)
	if ok {
		t.Herbs = v
	}
	return err
}

func loadEnhancements(t *Tables, dir string) error {
	var v []Enhancement
	ok, err := loadTable(filepath.Join(dir, "enhancements.json"), &v)
	if ok {
		t.Enhancements = v
	}
	return err
}

func loadPetTemplates(t *Tables, dir string) error {
	var v []PetTemplate
	ok, err := loadTable(filepath.Join(dir, "pet_templates.json"), &v)
	if ok {
		t.PetTemplates = v
	}
	return err
}

func loadRecipes(t *Tables, dir string) error {
	var v []string
	ok, err := loadTable(filepath.Join(dir, "recipes.json"), &v)
	if ok {
		t.Recipes = v
	}
	return err
}

func loadRealms(t *Tables, dir string) error {
	var v []string
	ok, err := loadTable(filepath.Join(dir, "realms.json"), &v)
	if ok {
		t.Realms = v
	}
	return err
}

func loadKnownEffects(t *Tables, dir string) error {
	var v map[string]item.KnownEffect
	ok, err := loadTable(filepath.Join(dir, "known_effects.json"), &v)
	if ok {
		t.KnownEffects = v
	}
	return err
}

func loadRarities(t *Tables, dir string) error {
	var v item.RarityTable
	ok, err := loadTable(filepath.Join(dir, "rarities.json"), &v)
	if ok {
		t.Rarities = v
	}
	return err
}
