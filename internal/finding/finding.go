package finding

// Finding is one diagnostic occurrence extracted from a raw analyzer report.
// Line is a pointer because some diagnostics carry no location line; a nil
// line is part of the finding identity and must survive serialization as
// JSON null, not zero.
type Finding struct {
	Checker string `json:"checker"`
	Message string `json:"message"`
	Line    *int   `json:"line"`
}

// Set maps canonical file paths to findings in discovery order.
type Set map[string][]Finding

// Key is the identity of a finding: the (file, checker, line, message)
// tuple. Two findings with the same key are the same finding; it is the
// deduplication and comparison key. LineKnown distinguishes "no line" from
// line zero.
type Key struct {
	File      string
	Checker   string
	Line      int
	LineKnown bool
	Message   string
}

// NewKey builds the identity key for a finding located in file.
func NewKey(file string, f Finding) Key {
	k := Key{
		File:    file,
		Checker: f.Checker,
		Message: f.Message,
	}
	if f.Line != nil {
		k.Line = *f.Line
		k.LineKnown = true
	}
	return k
}

// Detail is the human-readable record reconstructed from a key for
// comparison reports.
type Detail struct {
	File    string `json:"file"`
	Checker string `json:"checker"`
	Line    *int   `json:"line"`
	Message string `json:"message"`
}

// Detail reconstructs the report-facing view of the key.
func (k Key) Detail() Detail {
	d := Detail{
		File:    k.File,
		Checker: k.Checker,
		Message: k.Message,
	}
	if k.LineKnown {
		line := k.Line
		d.Line = &line
	}
	return d
}

// Keys flattens the set into its identity keys across all files.
func (s Set) Keys() map[Key]struct{} {
	keys := make(map[Key]struct{})
	for file, entries := range s {
		for _, f := range entries {
			keys[NewKey(file, f)] = struct{}{}
		}
	}
	return keys
}

// Count returns the total number of findings across all files.
func (s Set) Count() int {
	n := 0
	for _, entries := range s {
		n += len(entries)
	}
	return n
}
