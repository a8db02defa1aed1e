// Package content loads the data a match is built from: the node graph, the
// class and skill tables and the gameplay tunables.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/cory-johannsen/textmoba/internal/game/character"
	"github.com/cory-johannsen/textmoba/internal/game/skill"
	"github.com/cory-johannsen/textmoba/internal/game/world"
)

// File names looked up in a content directory.
const (
	NodesFile    = "nodes.yaml"
	ClassesFile  = "classes.yaml"
	SkillsFile   = "skills.yaml"
	GameplayFile = "gameplay.yaml"
)

//go:embed data/*.yaml
var embedded embed.FS

// Content is everything loaded for one match.
type Content struct {
	Graph    *world.Graph
	Classes  *character.ClassRegistry
	Skills   *skill.Registry
	Gameplay *Gameplay
}

// Default returns the content bundled with the binary.
func Default() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(fmt.Sprintf("content: embedded data: %v", err))
	}
	return sub
}

// Load reads content from dir, or the embedded defaults when dir is empty.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns Content or a non-nil error.
func Load(dir string, logger *zap.Logger) (*Content, error) {
	if dir == "" {
		return LoadFS(Default(), logger)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir), logger)
}

// LoadFS reads the four content files from fsys and cross-checks their
// references. Dangling references are logged; only unreadable or malformed
// files fail.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns Content or a non-nil error.
func LoadFS(fsys fs.FS, logger *zap.Logger) (*Content, error) {
	read := func(name string) ([]byte, error) {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		return data, nil
	}

	data, err := read(NodesFile)
	if err != nil {
		return nil, err
	}
	graph, err := world.LoadGraphFromBytes(data, logger.With(zap.String("file", NodesFile)))
	if err != nil {
		return nil, err
	}

	if data, err = read(ClassesFile); err != nil {
		return nil, err
	}
	classes, err := character.LoadClassesFromBytes(data, logger.With(zap.String("file", ClassesFile)))
	if err != nil {
		return nil, err
	}

	if data, err = read(SkillsFile); err != nil {
		return nil, err
	}
	skills, err := skill.LoadFromBytes(data, logger.With(zap.String("file", SkillsFile)))
	if err != nil {
		return nil, err
	}

	if data, err = read(GameplayFile); err != nil {
		return nil, err
	}
	gameplay, err := LoadGameplayFromBytes(data, logger.With(zap.String("file", GameplayFile)))
	if err != nil {
		return nil, err
	}

	c := &Content{Graph: graph, Classes: classes, Skills: skills, Gameplay: gameplay}
	c.check(logger)
	logger.Info("content loaded",
		zap.Int("nodes", graph.Len()),
		zap.Int("classes", len(classes.IDs())),
		zap.Int("skills", len(skills.IDs())),
		zap.Int("heroes", len(gameplay.Heroes)),
	)
	return c, nil
}

// check logs references between the files that do not resolve.
func (c *Content) check(logger *zap.Logger) {
	for _, id := range c.Classes.IDs() {
		cls, _ := c.Classes.Get(id)
		for _, sk := range cls.Skills {
			if _, ok := c.Skills.Get(sk); !ok {
				logger.Warn("class references unknown skill", zap.String("class", id), zap.String("skill", sk))
			}
		}
	}

	class := func(id, role string) {
		if _, ok := c.Classes.Get(id); !ok {
			logger.Error("gameplay references unknown class", zap.String("class", id), zap.String("role", role))
		}
	}
	for _, team := range character.Teams {
		class(c.Gameplay.MinionClass[team], team.String()+" minion")
		if _, ok := c.Graph.Fonxus(team); !ok {
			logger.Error("no fonxus node", zap.Stringer("team", team))
		}
	}
	class(c.Gameplay.FonxusClass, "fonxus")
	class(c.Gameplay.TowerClass, "tower")
	for _, h := range c.Gameplay.Heroes {
		class(h.Class, "hero")
	}
}
