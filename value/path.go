package value

import "strings"

// SegmentKind distinguishes a property-name path segment from an
// array-index one.
type SegmentKind uint8

const (
	SegmentProperty SegmentKind = iota
	SegmentIndex
)

// Segment is one element of a Path: either a property name or an
// array index.
type Segment struct {
	Kind  SegmentKind
	Name  string
	Index int
}

// Path is an ordered sequence of property/index segments with O(1)
// push/pop and a cached string form, grounded on the builder-based
// path rendering in jsonschema/schema.go's errsToString/appendString.
type Path struct {
	segments []Segment
	cached   string
	dirty    bool
}

// NewPath returns an empty, root path.
func NewPath() *Path {
	return &Path{cached: "$"}
}

// Push appends a property segment and returns the new length, so
// callers can Pop back to it.
func (p *Path) Push(name string) int {
	p.segments = append(p.segments, Segment{Kind: SegmentProperty, Name: name})
	p.dirty = true
	return len(p.segments)
}

// PushIndex appends an array-index segment.
func (p *Path) PushIndex(i int) int {
	p.segments = append(p.segments, Segment{Kind: SegmentIndex, Index: i})
	p.dirty = true
	return len(p.segments)
}

// Pop truncates the path back to the given length (as returned by
// Push/PushIndex), restoring the state before that segment was added.
func (p *Path) Pop(toLen int) {
	if toLen < 0 {
		toLen = 0
	}
	if toLen > len(p.segments) {
		return
	}
	p.segments = p.segments[:toLen]
	p.dirty = true
}

// Len returns the number of segments currently on the path.
func (p *Path) Len() int { return len(p.segments) }

// Segments returns a read-only view of the current segments.
func (p *Path) Segments() []Segment { return p.segments }

// String renders the path as "$.field[0].nested", caching the result
// until the path is mutated again.
func (p *Path) String() string {
	if !p.dirty && p.cached != "" {
		return p.cached
	}
	var sb strings.Builder
	sb.Grow(8 + 8*len(p.segments))
	sb.WriteByte('$')
	for _, seg := range p.segments {
		switch seg.Kind {
		case SegmentProperty:
			sb.WriteByte('.')
			sb.WriteString(seg.Name)
		case SegmentIndex:
			sb.WriteByte('[')
			sb.WriteString(itoa(seg.Index))
			sb.WriteByte(']')
		}
	}
	p.cached = sb.String()
	p.dirty = false
	return p.cached
}

// Clone returns an independent copy of the path, useful when an issue
// needs to capture the path at the moment it was raised.
func (p *Path) Clone() *Path {
	segs := make([]Segment, len(p.segments))
	copy(segs, p.segments)
	return &Path{segments: segs, cached: p.String()}
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// Less reports whether path a sorts before path b, the ordering used for
// Report issues. It compares the rendered path strings byte by byte, so
// a shorter path that is a prefix of a longer one sorts first, and
// array indices compare as text, not numerically ("$.a[10]" sorts
// before "$.a[2]").
func Less(a, b string) bool {
	return a < b
}
