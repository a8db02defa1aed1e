package character

import (
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/textmoba/internal/game/tables"
)

// Class table sizes and defaults applied when a class omits a field.
const (
	StatLevels       = 6
	DefaultSortIndex = 9999
)

// Class is an immutable character template. Stat tables are indexed by the
// character's 0-based level; levels past the end reuse the last entry.
type Class struct {
	ID         string
	Name       string
	SortIndex  int
	Type       Type
	DefaultRow Row
	// Passive marks structures that fire every usable skill at the start of each turn.
	Passive bool

	MaxHP   []int
	MaxMana []int
	Damage  []int
	Range   []int
	Skills  []string
}

func stat(table []int, level int) int {
	if len(table) == 0 {
		return 0
	}
	if level < 0 {
		level = 0
	}
	if level >= len(table) {
		level = len(table) - 1
	}
	return table[level]
}

// MaxHPAt returns the hit point cap at level.
func (c *Class) MaxHPAt(level int) int { return stat(c.MaxHP, level) }

// MaxManaAt returns the mana cap at level.
func (c *Class) MaxManaAt(level int) int { return stat(c.MaxMana, level) }

// DamageAt returns basic attack damage at level.
func (c *Class) DamageAt(level int) int { return stat(c.Damage, level) }

// RangeAt returns basic attack range at level.
func (c *Class) RangeAt(level int) int { return stat(c.Range, level) }

// ClassRegistry is the read-only table of classes built at load time.
type ClassRegistry struct {
	classes map[string]*Class
}

// NewClassRegistry indexes classes by ID.
//
// Postcondition: Returns an error on duplicate or empty IDs.
func NewClassRegistry(classes ...*Class) (*ClassRegistry, error) {
	r := &ClassRegistry{classes: make(map[string]*Class, len(classes))}
	for _, c := range classes {
		if c.ID == "" {
			return nil, fmt.Errorf("class ID must not be empty")
		}
		if _, dup := r.classes[c.ID]; dup {
			return nil, fmt.Errorf("duplicate class ID %q", c.ID)
		}
		r.classes[c.ID] = c
	}
	return r, nil
}

// Get returns the class with the given ID.
//
// Postcondition: Returns (class, true) if found, or (nil, false) otherwise.
func (r *ClassRegistry) Get(id string) (*Class, bool) {
	c, ok := r.classes[id]
	return c, ok
}

// IDs returns every class ID in ascending order.
func (r *ClassRegistry) IDs() []string {
	ids := make([]string, 0, len(r.classes))
	for id := range r.classes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

type yamlClassFile struct {
	Classes map[string]yamlClass `yaml:"classes"`
}

type yamlClass struct {
	Name       string              `yaml:"name"`
	SortIndex  *int                `yaml:"sort_index"`
	Type       string              `yaml:"type"`
	DefaultRow string              `yaml:"default_place"`
	Passive    bool                `yaml:"passive"`
	MaxHP      tables.Leveled[int] `yaml:"max_hp"`
	MaxMana    tables.Leveled[int] `yaml:"max_mana"`
	Damage     tables.Leveled[int] `yaml:"damage"`
	Range      tables.Leveled[int] `yaml:"range"`
	Skills     []string            `yaml:"skills"`
}

// LoadClassesFromFile reads a classes YAML file.
//
// Precondition: path must point to a readable file.
// Postcondition: Returns a ClassRegistry or a non-nil error.
func LoadClassesFromFile(path string, logger *zap.Logger) (*ClassRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading class file %s: %w", path, err)
	}
	return LoadClassesFromBytes(data, logger)
}

// LoadClassesFromBytes parses classes from YAML. Invalid enum values are logged
// and defaulted (type building, row back); only malformed YAML fails.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a ClassRegistry or a non-nil error.
func LoadClassesFromBytes(data []byte, logger *zap.Logger) (*ClassRegistry, error) {
	var file yamlClassFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing class YAML: %w", err)
	}

	ids := make([]string, 0, len(file.Classes))
	for id := range file.Classes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	classes := make([]*Class, 0, len(ids))
	for _, id := range ids {
		classes = append(classes, convertYAMLClass(id, file.Classes[id], logger.With(zap.String("class", id))))
	}
	return NewClassRegistry(classes...)
}

func convertYAMLClass(id string, yc yamlClass, logger *zap.Logger) *Class {
	c := &Class{
		ID:        id,
		Name:      yc.Name,
		SortIndex: DefaultSortIndex,
		Passive:   yc.Passive,
		Skills:    yc.Skills,
	}
	if c.Name == "" {
		logger.Warn("class without name")
		c.Name = id
	}
	if yc.SortIndex != nil {
		c.SortIndex = *yc.SortIndex
	}

	typ, ok := ParseType(yc.Type)
	if !ok {
		logger.Error("invalid class type, defaulting to building", zap.String("type", yc.Type))
	}
	c.Type = typ

	c.DefaultRow = Back
	if yc.DefaultRow != "" {
		row, ok := ParseRow(yc.DefaultRow)
		if !ok {
			logger.Warn("invalid default place, defaulting to back", zap.String("default_place", yc.DefaultRow))
		}
		c.DefaultRow = row
	}

	c.MaxHP = statTable(yc.MaxHP, "max_hp", logger)
	c.MaxMana = statTable(yc.MaxMana, "max_mana", logger)
	c.Damage = statTable(yc.Damage, "damage", logger)
	c.Range = statTable(yc.Range, "range", logger)
	return c
}

func statTable(l tables.Leveled[int], field string, logger *zap.Logger) []int {
	out, overflow := l.Expand(StatLevels, 0)
	if overflow > 0 {
		logger.Warn("too many values in level table",
			zap.String("field", field),
			zap.Int("dropped", overflow),
		)
	}
	return out
}
