package wasicore

import (
	"fmt"
	"io"
)

// PreopenInfo describes one live preopened directory descriptor, for
// introspection tools (cmd/wasicorectl's "preopens" subcommand).
type PreopenInfo struct {
	Fd         Fd
	MappedPath string
	RealPath   string
}

// ListPreopens reports every descriptor installed as a preopen, in
// ascending Fd order.
func (s *Sandbox) ListPreopens() []PreopenInfo {
	var out []PreopenInfo
	s.table.scan(func(fd Fd, d *descriptor) bool {
		if d.preopen {
			out = append(out, PreopenInfo{Fd: fd, MappedPath: d.mappedPath, RealPath: d.realPath})
		}
		return true
	})
	return out
}

// DescriptorInfo is one row of a descriptor-table dump.
type DescriptorInfo struct {
	Fd               Fd
	Type             Filetype
	RightsBase       Rights
	RightsInheriting Rights
	Preopen          bool
	MappedPath       string
}

// DumpTable writes one line per live descriptor to w, in ascending Fd
// order. Intended for cmd/wasicorectl's "table" subcommand and for tests
// that want a human-readable snapshot of table state.
func (s *Sandbox) DumpTable(w io.Writer) {
	s.table.scan(func(fd Fd, d *descriptor) bool {
		fmt.Fprintf(w, "fd=%d type=%d rights_base=%#x rights_inheriting=%#x preopen=%v mapped=%q\n",
			fd, d.typ, uint64(d.rightsBase), uint64(d.rightsInheriting), d.preopen, d.mappedPath)
		return true
	})
}
