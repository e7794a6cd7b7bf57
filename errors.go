package nodewire

import "fmt"

// UnknownWireTypeError is the error returned when a received wire
// value carries a tag outside the known value union. It is fatal to
// the decode: there is no way to interpret the payload.
type UnknownWireTypeError struct {
	// Kind is the unrecognized top-level tag.
	Kind WireKind
}

func (e UnknownWireTypeError) Error() string {
	return fmt.Sprintf("unknown wire value type %d", uint16(e.Kind))
}

// UnsupportedValueTypeError is the error returned when a value
// outside the supported union is given to [Encode].
type UnsupportedValueTypeError struct {
	// Type is the name of the offending type.
	Type string
	// Reason is an optional explanation of why the value cannot be
	// encoded.
	Reason string
}

func (e UnsupportedValueTypeError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("cannot encode value of type %s", e.Type)
	}
	return fmt.Sprintf("cannot encode value of type %s: %s", e.Type, e.Reason)
}

// InvalidPathError is the error returned when a path or path prefix
// does not correspond to any node in the registry.
type InvalidPathError struct {
	// Path is the offending path.
	Path NodePath
	// Reason explains what makes the path invalid.
	Reason string
}

func (e InvalidPathError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid node path %q", string(e.Path))
	}
	return fmt.Sprintf("invalid node path %q: %s", string(e.Path), e.Reason)
}
