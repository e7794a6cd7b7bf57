package nodewire

import (
	"maps"
	"slices"
)

// NodeProperties is the set of access flags declared for a node.
type NodeProperties uint8

const (
	// PropRead marks a readable node.
	PropRead NodeProperties = 1 << iota
	// PropWrite marks a writable node.
	PropWrite
	// PropSetting marks a node that is part of the instrument
	// settings, as opposed to streamed measurement data.
	PropSetting
	// PropStreaming marks a node that pushes values continuously.
	PropStreaming
)

// Readable reports whether the node can be read.
func (p NodeProperties) Readable() bool { return p&PropRead != 0 }

// Writable reports whether the node can be written.
func (p NodeProperties) Writable() bool { return p&PropWrite != 0 }

// IsSetting reports whether the node is a setting.
func (p NodeProperties) IsSetting() bool { return p&PropSetting != 0 }

// An OptionInfo describes one enumerated value of an integer node.
type OptionInfo struct {
	// Enum is the keyword for the option, empty for nameless options.
	Enum string `json:"enum,omitempty"`
	// Description is the human-readable explanation of the option.
	Description string `json:"description,omitempty"`
}

// NodeInfo is the metadata the server declares for one concrete node
// path.
type NodeInfo struct {
	// Description is the human-readable node description.
	Description string `json:"description,omitempty"`
	// Properties holds the node's access flags.
	Properties NodeProperties `json:"properties"`
	// Type is the declared value type name, e.g. "Integer (64 bit)"
	// or "ZIVectorData".
	Type string `json:"type,omitempty"`
	// Unit is the physical unit of the value, if any.
	Unit string `json:"unit,omitempty"`
	// Options maps enumerated integer values to their meaning.
	Options map[int64]OptionInfo `json:"options,omitempty"`
}

// A Registry is the authoritative flat map of all known concrete node
// paths to their declared metadata for one connection. It is built
// once at tree-construction time and read-only thereafter.
type Registry struct {
	info  map[NodePath]NodeInfo
	paths []NodePath
}

// NewRegistry builds a registry from the path metadata reported by
// the server. The input map is copied; paths iterate in sorted order.
func NewRegistry(info map[NodePath]NodeInfo) *Registry {
	return &Registry{
		info:  maps.Clone(info),
		paths: slices.Sorted(maps.Keys(info)),
	}
}

// Paths returns all registered paths in sorted order. The caller must
// not modify the returned slice.
func (r *Registry) Paths() []NodePath {
	return r.paths
}

// Has reports whether path is registered.
func (r *Registry) Has(path NodePath) bool {
	_, ok := r.info[path]
	return ok
}

// Info returns the metadata for a registered path.
func (r *Registry) Info(path NodePath) (NodeInfo, bool) {
	inf, ok := r.info[path]
	return inf, ok
}

// Len returns the number of registered paths.
func (r *Registry) Len() int {
	return len(r.paths)
}

// Match resolves a path expression against the registered paths. See
// [MatchExpression] for the matching rules.
func (r *Registry) Match(expr NodePath) []NodePath {
	return MatchExpression(expr, r.paths)
}
