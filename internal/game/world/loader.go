package world

import (
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/textmoba/internal/game/character"
)

// yamlMapFile is the top-level YAML structure for map files.
type yamlMapFile struct {
	Nodes map[string]yamlNode `yaml:"nodes"`
	Paths []yamlPath          `yaml:"paths"`
}

type yamlNode struct {
	Name     string    `yaml:"name"`
	Position []float64 `yaml:"position"`
	Tower    string    `yaml:"tower"`
	Fonxus   string    `yaml:"fonxus"`
}

type yamlPath struct {
	From     string   `yaml:"from"`
	To       string   `yaml:"to"`
	FromDirs []string `yaml:"from_dirs"`
	ToDirs   []string `yaml:"to_dirs"`
}

// LoadGraphFromFile reads a map YAML file.
//
// Precondition: path must point to a readable file.
// Postcondition: Returns a Graph or a non-nil error.
func LoadGraphFromFile(path string, logger *zap.Logger) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file %s: %w", path, err)
	}
	return LoadGraphFromBytes(data, logger)
}

// LoadGraphFromBytes parses nodes and paths from YAML. Paths that reference
// unknown nodes and unknown team markers are logged and skipped; only malformed
// YAML or duplicate node IDs fail.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a Graph or a non-nil error.
func LoadGraphFromBytes(data []byte, logger *zap.Logger) (*Graph, error) {
	var file yamlMapFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing map YAML: %w", err)
	}
	if len(file.Nodes) == 0 {
		logger.Error("map without nodes")
	}

	ids := make([]string, 0, len(file.Nodes))
	for id := range file.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	nodes := make([]*Node, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, convertYAMLNode(id, file.Nodes[id], logger.With(zap.String("node", id))))
	}
	g, err := NewGraph(nodes...)
	if err != nil {
		return nil, err
	}

	for i, yp := range file.Paths {
		if yp.From == "" || yp.To == "" {
			logger.Error("invalid path", zap.Int("index", i))
			continue
		}
		if err := g.Connect(yp.From, yp.To, toDirections(yp.FromDirs), toDirections(yp.ToDirs)); err != nil {
			logger.Error("skipping path", zap.Int("index", i), zap.Error(err))
		}
	}
	return g, nil
}

func convertYAMLNode(id string, yn yamlNode, logger *zap.Logger) *Node {
	n := NewNode(id, yn.Name)
	if n.Name == "" {
		logger.Warn("node without name")
		n.Name = id
	}
	if len(yn.Position) == 2 {
		n.Pos = [2]float64{yn.Position[0], yn.Position[1]}
	} else {
		logger.Warn("node without position")
	}
	n.Tower = parseMarker(yn.Tower, "tower", logger)
	n.Fonxus = parseMarker(yn.Fonxus, "fonxus", logger)
	return n
}

func parseMarker(s, field string, logger *zap.Logger) Marker {
	if s == "" {
		return Marker{}
	}
	team, ok := character.ParseTeam(s)
	if !ok {
		logger.Warn("unknown team marker", zap.String("field", field), zap.String("team", s))
		return Marker{}
	}
	if team == character.Neutral {
		logger.Warn("skipping neutral team marker", zap.String("field", field))
		return Marker{}
	}
	return Marker{Team: team, Present: true}
}

func toDirections(ss []string) []Direction {
	out := make([]Direction, len(ss))
	for i, s := range ss {
		out[i] = Direction(s)
	}
	return out
}
