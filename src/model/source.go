package model

// SourceFile holds the raw content of one file under analysis.
// It is owned by a single analyzer invocation and never mutated after load.
type SourceFile struct {
	Path      string
	Lines     []string // 1-indexed via Line(); Lines[0] is line 1
	LineCount int
}

// Line returns the 1-indexed line text, or "" when out of range
func (f *SourceFile) Line(n int) string {
	if n < 1 || n > len(f.Lines) {
		return ""
	}
	return f.Lines[n-1]
}

// DeclKind describes the construct that introduced an identifier
type DeclKind string

const (
	DeclLet      DeclKind = "let"
	DeclParam    DeclKind = "param"
	DeclFunction DeclKind = "function"
	DeclConst    DeclKind = "const"
	DeclType     DeclKind = "type"
	DeclLoop     DeclKind = "loop"
)

// Identifier is one binding/declaration site found in a source file
type Identifier struct {
	Name   string
	Kind   DeclKind
	Line   int
	Column int
}

// FunctionSpan is the contiguous line range of one function
type FunctionSpan struct {
	Name       string
	StartLine  int
	EndLine    int
	BodyLines  int
	ParamCount int
	Params     []string
	IsTest     bool
	IsAsync    bool
	IsUnsafe   bool
}

// Contains reports whether the given line falls inside the span
func (f FunctionSpan) Contains(line int) bool {
	return line >= f.StartLine && line <= f.EndLine
}

// Import is a single use declaration in source order
type Import struct {
	Path string
	Line int
}

// CommentBlock is a run of consecutive comment lines that resemble code
type CommentBlock struct {
	StartLine int
	LineCount int
}

// SourceModel is the derived, read-only structural view over a SourceFile.
// It is built once per file and shared by all rules; rules must not mutate it.
type SourceModel struct {
	File *SourceFile

	// CodeLines mirrors File.Lines with string literals and comments blanked,
	// so rules never match tokens inside string or comment content.
	CodeLines []string

	// Depth holds the brace/block nesting depth at the start of each line
	// (same indexing as File.Lines).
	Depth []int

	Identifiers   []Identifier
	Functions     []FunctionSpan
	Imports       []Import
	CommentBlocks []CommentBlock

	// Degraded is set when some structural facts could not be extracted;
	// affected rules simply see fewer facts.
	Degraded bool
}

// CodeLine returns the 1-indexed code view of a line, or "" when out of range
func (m *SourceModel) CodeLine(n int) string {
	if n < 1 || n > len(m.CodeLines) {
		return ""
	}
	return m.CodeLines[n-1]
}

// FunctionAt returns the innermost function span containing the line, or nil
func (m *SourceModel) FunctionAt(line int) *FunctionSpan {
	var found *FunctionSpan
	for i := range m.Functions {
		fn := &m.Functions[i]
		if !fn.Contains(line) {
			continue
		}
		if found == nil || fn.StartLine > found.StartLine {
			found = fn
		}
	}
	return found
}

// MaxDepth returns the deepest nesting level observed in the file
func (m *SourceModel) MaxDepth() int {
	max := 0
	for _, d := range m.Depth {
		if d > max {
			max = d
		}
	}
	return max
}
