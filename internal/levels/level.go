// Package levels is the lesson catalogue: the ordered climb of levels, each
// with its input data and concept cards, plus the dispatcher that runs a
// card's algorithm and returns a replayable trace.
package levels

import (
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/algo/graph"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/algo/tree"
)

// Kind is the shape of a level's input data.
type Kind string

const (
	KindGraph Kind = "graph"
	KindTree  Kind = "tree"
	KindDSU   Kind = "dsu"
)

var (
	ErrUnknownLevel     = errors.New("levels: unknown level")
	ErrUnknownCard      = errors.New("levels: unknown concept card")
	ErrUnknownAlgorithm = errors.New("levels: unknown algorithm")
	ErrMissingInput     = errors.New("levels: missing algorithm input")
	ErrInvalidLevel     = errors.New("levels: invalid level")
	ErrInputTooLarge    = errors.New("levels: algorithm input too large")
)

// GraphSpec describes a graph in level files and API requests.
type GraphSpec struct {
	Directed bool         `yaml:"directed" json:"directed"`
	Vertices []string     `yaml:"vertices" json:"vertices" validate:"dive,required"`
	Edges    []graph.Edge `yaml:"edges" json:"edges"`
}

// Build turns the spec into a graph.
func (s *GraphSpec) Build() (*graph.Graph, error) {
	return graph.FromEdges(s.Directed, s.Vertices, s.Edges)
}

// DSUSpec describes a union-find exercise: the elements and the unions to
// perform, in order.
type DSUSpec struct {
	Elements []string   `yaml:"elements" json:"elements" validate:"required,min=1,dive,required"`
	Unions   [][]string `yaml:"unions" json:"unions" validate:"dive,len=2"`
}

// ConceptCard is one explorable idea inside a level. Selecting it plays
// the animation of Algorithm over the level's data.
type ConceptCard struct {
	ID          string `yaml:"id" json:"id" validate:"required,slug"`
	Title       string `yaml:"title" json:"title" validate:"required"`
	Algorithm   string `yaml:"algorithm" json:"algorithm" validate:"required,algorithm"`
	Source      string `yaml:"source,omitempty" json:"source,omitempty"`
	Target      string `yaml:"target,omitempty" json:"target,omitempty"`
	Description string `yaml:"description" json:"description"`
}

// Level is a stage of the climb.
type Level struct {
	ID      string        `yaml:"id" json:"id" validate:"required,slug"`
	Number  int           `yaml:"number" json:"number" validate:"required,min=1"`
	Title   string        `yaml:"title" json:"title" validate:"required"`
	Summary string        `yaml:"summary" json:"summary"`
	Kind    Kind          `yaml:"kind" json:"kind" validate:"required,oneof=graph tree dsu"`
	Premium bool          `yaml:"premium" json:"premium"`
	Graph   *GraphSpec    `yaml:"graph,omitempty" json:"graph,omitempty" validate:"required_if=Kind graph"`
	Tree    []*int        `yaml:"tree,omitempty" json:"tree,omitempty" validate:"required_if=Kind tree"`
	DSU     *DSUSpec      `yaml:"dsu,omitempty" json:"dsu,omitempty" validate:"required_if=Kind dsu"`
	Cards   []ConceptCard `yaml:"cards" json:"cards" validate:"required,min=1,dive"`
}

// Scoring: every visited card earns PointsPerCard, every restart costs
// RestartPenalty, and a finished level never scores below MinScore.
const (
	PointsPerCard  = 100
	RestartPenalty = 10
	MinScore       = 100
)

// MaxScore is the best score the level can award: every card, no restarts.
func (l *Level) MaxScore() int {
	return max(MinScore, len(l.Cards)*PointsPerCard)
}

// Card looks up a concept card by ID.
func (l *Level) Card(id string) (ConceptCard, error) {
	for _, c := range l.Cards {
		if c.ID == id {
			return c, nil
		}
	}
	return ConceptCard{}, fmt.Errorf("%w: %q in level %q", ErrUnknownCard, id, l.ID)
}

// Input returns the algorithm input for one of the level's cards.
func (l *Level) Input(card ConceptCard) Input {
	return Input{
		Graph:  l.Graph,
		Tree:   l.Tree,
		DSU:    l.DSU,
		Source: card.Source,
		Target: card.Target,
	}
}

// Root builds the level's tree, nil for non-tree levels.
func (l *Level) Root() *tree.Node {
	return tree.FromLevelOrder(l.Tree)
}

var slugRE = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRE.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("algorithm", func(fl validator.FieldLevel) bool {
		_, ok := runners[fl.Field().String()]
		return ok
	})
	return v
}

var validate = newValidator()

// Validate checks struct tags, then the rules tags cannot express: card
// algorithms must fit the level kind, card IDs must be unique and
// source/target vertices must exist.
func (l *Level) Validate() error {
	if err := validate.Struct(l); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidLevel, l.ID, err)
	}

	var vertices []string
	if l.Kind == KindGraph {
		g, err := l.Graph.Build()
		if err != nil {
			return fmt.Errorf("%w %q: %w", ErrInvalidLevel, l.ID, err)
		}
		vertices = g.Vertices()
	}
	if l.Kind == KindDSU {
		for _, u := range l.DSU.Unions {
			for _, x := range u {
				if !slices.Contains(l.DSU.Elements, x) {
					return fmt.Errorf("%w %q: union of unknown element %q", ErrInvalidLevel, l.ID, x)
				}
			}
		}
	}

	seen := make(map[string]bool, len(l.Cards))
	for _, c := range l.Cards {
		if seen[c.ID] {
			return fmt.Errorf("%w %q: duplicate card %q", ErrInvalidLevel, l.ID, c.ID)
		}
		seen[c.ID] = true

		r := runners[c.Algorithm]
		if r.kind != l.Kind {
			return fmt.Errorf("%w %q: card %q runs %s on a %s level", ErrInvalidLevel, l.ID, c.ID, r.kind, l.Kind)
		}
		if r.needsSource && c.Source == "" {
			return fmt.Errorf("%w %q: card %q needs a source", ErrInvalidLevel, l.ID, c.ID)
		}
		for _, v := range []string{c.Source, c.Target} {
			if v != "" && !slices.Contains(vertices, v) {
				return fmt.Errorf("%w %q: card %q references unknown vertex %q", ErrInvalidLevel, l.ID, c.ID, v)
			}
		}
	}
	return nil
}
