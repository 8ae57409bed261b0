package emit

import "strings"

// BufferID names a line buffer inside a Module. Zero is no buffer.
type BufferID uint32

// Buffer is an ordered list of output lines.
type Buffer struct {
	Lines []string
}

// Module owns every buffer of one conversion. Segments are the buffers that
// make up the output, in creation order; scratch buffers are not part of it.
type Module struct {
	buffers  *arena[Buffer]
	segments []BufferID
}

// NewModule returns an empty module.
func NewModule() *Module {
	return &Module{buffers: newArena[Buffer](64)}
}

// Segment opens a new output segment after the existing ones.
func (m *Module) Segment() BufferID {
	id := BufferID(m.buffers.allocate(Buffer{}))
	m.segments = append(m.segments, id)
	return id
}

// Scratch allocates a buffer that is never emitted by itself.
func (m *Module) Scratch() BufferID {
	return BufferID(m.buffers.allocate(Buffer{}))
}

// Append adds lines to a buffer.
func (m *Module) Append(id BufferID, lines ...string) {
	buf := m.buffers.get(uint32(id))
	if buf == nil {
		panic("emit: append to unknown buffer")
	}
	buf.Lines = append(buf.Lines, lines...)
}

// Lines returns the lines of a buffer. The slice must not be modified.
func (m *Module) Lines(id BufferID) []string {
	buf := m.buffers.get(uint32(id))
	if buf == nil {
		return nil
	}
	return buf.Lines
}

// Segments returns the non-empty segments in order.
func (m *Module) Segments() [][]string {
	out := make([][]string, 0, len(m.segments))
	for _, id := range m.segments {
		if lines := m.Lines(id); len(lines) > 0 {
			out = append(out, lines)
		}
	}
	return out
}

// String joins the lines of each segment and the segments with newlines.
func (m *Module) String() string {
	segs := m.Segments()
	parts := make([]string, 0, len(segs))
	for _, lines := range segs {
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n")
}
