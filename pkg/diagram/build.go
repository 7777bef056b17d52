package diagram

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/matzehuels/stepgraph/pkg/core/classify"
	"github.com/matzehuels/stepgraph/pkg/core/layout"
	"github.com/matzehuels/stepgraph/pkg/core/style"
	"github.com/matzehuels/stepgraph/pkg/core/topology"
	"github.com/matzehuels/stepgraph/pkg/errors"
)

// Options configures [Build].
type Options struct {
	Geometry   layout.Geometry
	Classifier *classify.Classifier
	Mapper     style.Mapper // nil selects style.MapperFor(kind)
}

// Option mutates Options.
type Option func(*Options)

// WithGeometry overrides the layout constants.
func WithGeometry(g layout.Geometry) Option {
	return func(o *Options) { o.Geometry = g }
}

// WithClassifier replaces the default rule chain.
func WithClassifier(c *classify.Classifier) Option {
	return func(o *Options) { o.Classifier = c }
}

// WithMapper replaces the presentation mapper.
func WithMapper(m style.Mapper) Option {
	return func(o *Options) { o.Mapper = m }
}

func newOptions(opts []Option) Options {
	o := Options{Geometry: layout.DefaultGeometry()}
	for _, fn := range opts {
		fn(&o)
	}
	if o.Classifier == nil {
		o.Classifier = classify.New()
	}
	return o
}

// Build turns lines into a finished diagram of the given mode.
//
// Empty input is a NO_DATA error. Every input line becomes exactly one node
// whose ID is its index.
func Build(lines []string, mode Mode, opts ...Option) (*Graph, error) {
	if !mode.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidMode, "unknown mode %q", mode)
	}
	if len(lines) == 0 {
		return nil, errors.NoData()
	}
	o := newOptions(opts)

	classified := o.Classifier.Classify(lines)
	kind := KindFor(mode, classified)

	top, err := topology.Build(classified, kind)
	if err != nil {
		return nil, err
	}
	strategy, err := layout.StrategyFor(kind)
	if err != nil {
		return nil, err
	}
	pos, err := layout.Compute(top, strategy, o.Geometry)
	if err != nil {
		return nil, err
	}

	mapper := o.Mapper
	if mapper == nil {
		mapper = style.MapperFor(kind)
	}

	g := &Graph{
		Mode:  mode,
		Kind:  kind,
		Nodes: make([]Node, len(top.Nodes)),
		Edges: make([]Edge, len(top.Edges)),
	}
	infos := make(map[string]style.NodeInfo, len(top.Nodes))
	for i, n := range top.Nodes {
		info := style.NodeInfo{Index: n.Index, Role: n.Role, Depth: n.Depth, Level: n.Level}
		infos[n.ID] = info
		g.Nodes[i] = Node{
			ID:       n.ID,
			Label:    classified[n.Index].Label,
			Position: pos.Points[n.ID],
			Role:     n.Role,
			Depth:    n.Depth,
			Level:    n.Level,
			Style:    mapper.Node(info),
		}
	}
	for i, e := range top.Edges {
		g.Edges[i] = Edge{
			ID:             e.ID,
			Source:         e.Source,
			Target:         e.Target,
			Label:          e.Label,
			EdgeAttributes: mapper.Edge(style.EdgeInfo{Source: infos[e.Source], Target: infos[e.Target]}),
		}
	}

	if len(g.Nodes) != len(lines) {
		return nil, errors.Internal("built %d nodes from %d lines", len(g.Nodes), len(lines))
	}
	return g, nil
}

// ParseLines decodes a JSON array of strings.
//
// Missing input, JSON null and an empty array are NO_DATA. Anything else
// that is not an array of non-blank strings is INVALID_DATA.
func ParseLines(data []byte) ([]string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, errors.NoData()
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, errors.InvalidData(err)
	}
	if len(lines) == 0 {
		return nil, errors.NoData()
	}
	if err := CheckLines(lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// CheckLines rejects blank lines with INVALID_DATA.
func CheckLines(lines []string) error {
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			return errors.InvalidData(errors.New(errors.ErrCodeInvalidInput, "line %d is blank", i))
		}
	}
	return nil
}
