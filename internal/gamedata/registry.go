package gamedata

import (
	"errors"
	"fmt"
	"io/fs"
)

// MonsterRegistry holds loaded monster templates keyed by ID.
// It satisfies world.TemplateSource.
type MonsterRegistry struct {
	monsters []MonsterDef
	byID     map[string]*MonsterDef
}

// NewMonsterRegistry validates the templates and builds a registry.
func NewMonsterRegistry(monsters []MonsterDef) (*MonsterRegistry, error) {
	if len(monsters) == 0 {
		return nil, errors.New("no monster templates")
	}
	r := &MonsterRegistry{
		monsters: monsters,
		byID:     make(map[string]*MonsterDef, len(monsters)),
	}
	for i := range monsters {
		if err := monsters[i].Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byID[monsters[i].ID]; dup {
			return nil, fmt.Errorf("duplicate monster id %q", monsters[i].ID)
		}
		r.byID[monsters[i].ID] = &monsters[i]
	}
	return r, nil
}

// LoadMonsterRegistry loads and creates a registry from the embedded monsters.json.
func LoadMonsterRegistry() (*MonsterRegistry, error) {
	monsters, err := LoadMonsters()
	if err != nil {
		return nil, err
	}
	return NewMonsterRegistry(monsters)
}

// LoadMonsterRegistryFS loads a registry from a monsters file in fsys.
func LoadMonsterRegistryFS(fsys fs.FS, filename string) (*MonsterRegistry, error) {
	file, err := LoadFS[MonstersFile](fsys, filename)
	if err != nil {
		return nil, err
	}
	return NewMonsterRegistry(file.Monsters)
}

// MustLoadMonsterRegistry loads a registry, panicking on error.
func MustLoadMonsterRegistry() *MonsterRegistry {
	registry, err := LoadMonsterRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the monster template with the given ID, or nil if not found.
func (r *MonsterRegistry) GetByID(id string) *MonsterDef {
	return r.byID[id]
}

// Has returns true if a template with the given ID exists.
func (r *MonsterRegistry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// MonsterIDs returns the IDs of regular (non-boss) templates in file order.
func (r *MonsterRegistry) MonsterIDs() []string {
	ids := make([]string, 0, len(r.monsters))
	for _, m := range r.monsters {
		if !m.Boss {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// BossIDs returns the IDs of boss templates in file order. If no template is
// flagged as a boss every template qualifies.
func (r *MonsterRegistry) BossIDs() []string {
	ids := make([]string, 0, len(r.monsters))
	for _, m := range r.monsters {
		if m.Boss {
			ids = append(ids, m.ID)
		}
	}
	if len(ids) == 0 {
		for _, m := range r.monsters {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// All returns all monster templates.
func (r *MonsterRegistry) All() []MonsterDef {
	return r.monsters
}

// Count returns the number of templates in the registry.
func (r *MonsterRegistry) Count() int {
	return len(r.monsters)
}
