package skill

import (
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/textmoba/internal/game/tables"
)

// Table sizes and defaults used when a skill omits a field.
const (
	DefaultLevels   = 2
	DefaultRange    = 3
	DefaultCooldown = 0
	DefaultManaCost = 99999
)

// yamlSkillFile is the top-level YAML structure for skill files.
type yamlSkillFile struct {
	Skills map[string]yamlSkill `yaml:"skills"`
}

type yamlSkill struct {
	Name     string                 `yaml:"name"`
	Target   tables.Leveled[string] `yaml:"target"`
	Range    tables.Leveled[int]    `yaml:"range"`
	Cooldown tables.Leveled[int]    `yaml:"cooldown"`
	ManaCost tables.Leveled[int]    `yaml:"mana_cost"`
	Effects  []yamlEffect           `yaml:"effects"`
}

type yamlEffect struct {
	Type  tables.Leveled[string] `yaml:"type"`
	Power tables.Leveled[int]    `yaml:"power"`
}

// Registry is the read-only table of skill models built at load time.
type Registry struct {
	models map[string]*Model
}

// NewRegistry indexes models by ID.
//
// Postcondition: Returns an error on duplicate or empty IDs.
func NewRegistry(models ...*Model) (*Registry, error) {
	r := &Registry{models: make(map[string]*Model, len(models))}
	for _, m := range models {
		if m.ID == "" {
			return nil, fmt.Errorf("skill ID must not be empty")
		}
		if _, dup := r.models[m.ID]; dup {
			return nil, fmt.Errorf("duplicate skill ID %q", m.ID)
		}
		r.models[m.ID] = m
	}
	return r, nil
}

// Get returns the model with the given ID.
//
// Postcondition: Returns (model, true) if found, or (nil, false) otherwise.
func (r *Registry) Get(id string) (*Model, bool) {
	m, ok := r.models[id]
	return m, ok
}

// IDs returns every skill ID in ascending order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.models))
	for id := range r.models {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LoadFromFile reads a skills YAML file.
//
// Precondition: path must point to a readable file.
// Postcondition: Returns a Registry or a non-nil error.
func LoadFromFile(path string, logger *zap.Logger) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading skill file %s: %w", path, err)
	}
	return LoadFromBytes(data, logger)
}

// LoadFromBytes parses skill models from YAML. Unknown target shapes and effect
// kinds are logged and replaced by NoTarget / NoEffect; only malformed YAML fails.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a Registry with one model per YAML entry, or a non-nil error.
func LoadFromBytes(data []byte, logger *zap.Logger) (*Registry, error) {
	var file yamlSkillFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing skill YAML: %w", err)
	}

	ids := make([]string, 0, len(file.Skills))
	for id := range file.Skills {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	models := make([]*Model, 0, len(ids))
	for _, id := range ids {
		models = append(models, convertYAMLSkill(id, file.Skills[id], logger.With(zap.String("skill", id))))
	}
	return NewRegistry(models...)
}

func convertYAMLSkill(id string, ys yamlSkill, logger *zap.Logger) *Model {
	m := &Model{ID: id, Name: ys.Name}
	if m.Name == "" {
		logger.Warn("skill without name")
		m.Name = id
	}

	if !ys.Target.Set {
		logger.Warn("skill without target")
	}
	targets := expand(ys.Target, "", "target", logger)
	m.Shapes = make([]Shape, len(targets))
	for i, s := range targets {
		shape, ok := ParseShape(s)
		if !ok && ys.Target.Set {
			logger.Warn("unknown skill target", zap.String("target", s))
		}
		m.Shapes[i] = shape
	}

	m.Ranges = expand(ys.Range, DefaultRange, "range", logger)
	m.Cooldowns = expand(ys.Cooldown, DefaultCooldown, "cooldown", logger)
	m.ManaCosts = expand(ys.ManaCost, DefaultManaCost, "mana_cost", logger)

	if len(ys.Effects) == 0 {
		logger.Warn("skill without effects")
	}
	for _, ye := range ys.Effects {
		kinds := expand(ye.Type, "none", "effect type", logger)
		e := Effect{Kinds: make([]EffectKind, len(kinds))}
		for i, k := range kinds {
			kind, ok := ParseEffectKind(k)
			if !ok {
				logger.Warn("unknown skill effect type", zap.String("type", k))
			}
			e.Kinds[i] = kind
		}
		e.Powers = expand(ye.Power, 0, "effect power", logger)
		m.Effects = append(m.Effects, e)
	}
	return m
}

func expand[T any](l tables.Leveled[T], def T, field string, logger *zap.Logger) []T {
	out, overflow := l.Expand(DefaultLevels, def)
	if overflow > 0 {
		logger.Warn("too many values in level table",
			zap.String("field", field),
			zap.Int("dropped", overflow),
		)
	}
	return out
}
