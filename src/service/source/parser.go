package source

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"garbage-hunter/src/model"
)

// minCommentedCodeLines is the smallest run of comment lines that is
// considered a commented-out code block.
const minCommentedCodeLines = 3

// Load reads a file from disk into a SourceFile
func Load(path string) (*model.SourceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source file: %w", err)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	// a trailing newline yields one empty trailing element, not a real line
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return &model.SourceFile{
		Path:      path,
		Lines:     lines,
		LineCount: len(lines),
	}, nil
}

var (
	fnPattern = regexp.MustCompile(
		`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:default\s+)?(?:const\s+)?(async\s+)?(unsafe\s+)?(?:extern\s+"[^"]*"\s+)?fn\s+([A-Za-z_][A-Za-z0-9_]*)`)
	letPattern    = regexp.MustCompile(`\blet\s+(?:mut\s+)?([A-Za-z_][A-Za-z0-9_]*)`)
	forPattern    = regexp.MustCompile(`\bfor\s+(?:mut\s+)?([A-Za-z_][A-Za-z0-9_]*)\s+in\b`)
	constPattern  = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:const|static)\s+(?:mut\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	typePattern   = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:struct|enum|trait|union|type)\s+([A-Za-z_][A-Za-z0-9_]*)`)
	usePattern    = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?use\s+([^;]+);?`)
	testAttribute = regexp.MustCompile(`#\[\s*(?:tokio::)?test\s*\]|#\[cfg\(test\)\]`)
	identPattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Build derives the structural view over a source file. Construction never
// fails: anything the scanner cannot make sense of is skipped and the model
// is marked degraded instead.
func Build(file *model.SourceFile) *model.SourceModel {
	m := &model.SourceModel{File: file}

	m.CodeLines, m.Depth, m.Degraded = scanLexical(file.Lines)
	m.Functions = findFunctions(m)
	m.Identifiers = findIdentifiers(m)
	m.Imports = findImports(m)
	m.CommentBlocks = findCommentBlocks(file.Lines)

	return m
}

// scanLexical produces the code view (strings and comments blanked out,
// columns preserved) and the brace-depth at the start of each line.
func scanLexical(lines []string) (codeLines []string, depth []int, degraded bool) {
	codeLines = make([]string, len(lines))
	depth = make([]int, len(lines))

	currentDepth := 0
	blockCommentLevel := 0
	inString := false
	inRawString := false
	rawHashes := 0

	for i, line := range lines {
		depth[i] = currentDepth
		out := []byte(strings.Repeat(" ", len(line)))

		for j := 0; j < len(line); j++ {
			c := line[j]

			if blockCommentLevel > 0 {
				if c == '*' && j+1 < len(line) && line[j+1] == '/' {
					blockCommentLevel--
					j++
				} else if c == '/' && j+1 < len(line) && line[j+1] == '*' {
					blockCommentLevel++
					j++
				}
				continue
			}

			if inRawString {
				if c == '"' && hasHashes(line, j+1, rawHashes) {
					j += rawHashes
					inRawString = false
				}
				continue
			}

			if inString {
				if c == '\\' {
					j++
				} else if c == '"' {
					inString = false
					out[j] = c
				}
				continue
			}

			switch c {
			case '/':
				if j+1 < len(line) {
					if line[j+1] == '/' {
						j = len(line) // line comment: blank the rest
						continue
					}
					if line[j+1] == '*' {
						blockCommentLevel++
						j++
						continue
					}
				}
				out[j] = c
			case '"':
				// keep the delimiters visible so signatures like
				// extern "C" still match in the code view
				inString = true
				out[j] = c
			case 'r':
				if hashes, ok := rawStringStart(line, j); ok {
					inRawString = true
					rawHashes = hashes
					j += hashes + 1
					continue
				}
				out[j] = c
			case '\'':
				if end, ok := charLiteralEnd(line, j); ok {
					j = end
					continue
				}
				out[j] = c // lifetime marker, keep it visible to rules
			case '{':
				currentDepth++
				out[j] = c
			case '}':
				if currentDepth > 0 {
					currentDepth--
				}
				out[j] = c
			default:
				out[j] = c
			}
		}

		codeLines[i] = string(out)
	}

	degraded = currentDepth != 0 || blockCommentLevel != 0 || inString || inRawString
	return codeLines, depth, degraded
}

// rawStringStart reports whether position j opens a raw string literal
// (r"..." or r#"..."#), returning the number of hashes.
func rawStringStart(line string, j int) (int, bool) {
	if line[j] != 'r' {
		return 0, false
	}
	// must not be part of an identifier
	if j > 0 && (isIdentByte(line[j-1]) || line[j-1] == '#') {
		return 0, false
	}
	k := j + 1
	hashes := 0
	for k < len(line) && line[k] == '#' {
		hashes++
		k++
	}
	if k < len(line) && line[k] == '"' {
		return hashes, true
	}
	return 0, false
}

// charLiteralEnd returns the index of the closing quote when position j
// starts a char literal rather than a lifetime.
func charLiteralEnd(line string, j int) (int, bool) {
	if j+1 >= len(line) {
		return 0, false
	}
	if line[j+1] == '\\' {
		// escaped char: find the next quote
		for k := j + 2; k < len(line) && k < j+12; k++ {
			if line[k] == '\'' {
				return k, true
			}
		}
		return 0, false
	}
	if j+2 < len(line) && line[j+2] == '\'' {
		return j + 2, true
	}
	return 0, false
}

func hasHashes(line string, from, count int) bool {
	if from+count > len(line) {
		return false
	}
	for k := 0; k < count; k++ {
		if line[from+k] != '#' {
			return false
		}
	}
	return true
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func findFunctions(m *model.SourceModel) []model.FunctionSpan {
	var functions []model.FunctionSpan

	for i, line := range m.CodeLines {
		match := fnPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		name := match[3]
		startLine := i + 1

		endLine, ok := findBodyEnd(m.CodeLines, i)
		if !ok {
			continue // signature only (trait method) or unterminated
		}

		params := parseParams(m.CodeLines, i)
		span := model.FunctionSpan{
			Name:       name,
			StartLine:  startLine,
			EndLine:    endLine,
			BodyLines:  endLine - startLine + 1,
			ParamCount: len(params),
			Params:     params,
			IsAsync:    match[1] != "",
			IsUnsafe:   match[2] != "",
			IsTest:     isTestFunction(m.File.Lines, i, name),
		}
		functions = append(functions, span)
	}

	return functions
}

// findBodyEnd scans forward from the function header for the opening brace
// and returns the line where the body's braces balance out.
func findBodyEnd(codeLines []string, headerIdx int) (int, bool) {
	balance := 0
	opened := false

	for i := headerIdx; i < len(codeLines); i++ {
		for _, c := range codeLines[i] {
			switch c {
			case '{':
				balance++
				opened = true
			case '}':
				balance--
			case ';':
				if !opened {
					return 0, false
				}
			}
			if opened && balance == 0 {
				return i + 1, true
			}
		}
		// a header that runs for many lines without a brace is not a body
		if !opened && i > headerIdx+10 {
			return 0, false
		}
	}

	return 0, false
}

// parseParams extracts parameter names from the parenthesized list that
// starts on the header line (possibly spanning a few lines).
func parseParams(codeLines []string, headerIdx int) []string {
	var raw strings.Builder
	balance := 0
	started := false

collect:
	for i := headerIdx; i < len(codeLines) && i < headerIdx+10; i++ {
		for _, c := range codeLines[i] {
			switch c {
			case '(':
				balance++
				if !started {
					started = true
					continue
				}
			case ')':
				balance--
				if started && balance == 0 {
					break collect
				}
			case '{':
				if !started {
					return nil
				}
			}
			if started && balance >= 1 {
				raw.WriteRune(c)
			}
		}
		raw.WriteByte(' ')
	}

	var params []string
	for _, part := range splitTopLevel(raw.String()) {
		name := paramName(part)
		if name != "" && name != "self" {
			params = append(params, name)
		}
	}
	return params
}

// splitTopLevel splits on commas that are not nested inside <>, () or [].
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, c := range s {
		switch c {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

func paramName(part string) string {
	part = strings.TrimSpace(part)
	if part == "" {
		return ""
	}
	if idx := strings.Index(part, ":"); idx >= 0 {
		part = part[:idx]
	}
	part = strings.TrimSpace(part)
	part = strings.TrimPrefix(part, "&")
	part = strings.TrimPrefix(part, "mut ")
	part = strings.TrimSpace(part)
	if identPattern.MatchString(part) {
		return part
	}
	return ""
}

// isTestFunction checks the preceding attribute lines and the name prefix
func isTestFunction(lines []string, headerIdx int, name string) bool {
	if strings.HasPrefix(name, "test_") {
		return true
	}
	for i := headerIdx - 1; i >= 0 && i >= headerIdx-3; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if testAttribute.MatchString(trimmed) {
			return true
		}
		if !strings.HasPrefix(trimmed, "#[") {
			break
		}
	}
	return false
}

func findIdentifiers(m *model.SourceModel) []model.Identifier {
	var idents []model.Identifier

	add := func(name string, kind model.DeclKind, lineIdx int) {
		col := strings.Index(m.CodeLines[lineIdx], name)
		if col < 0 {
			col = 0
		}
		idents = append(idents, model.Identifier{
			Name:   name,
			Kind:   kind,
			Line:   lineIdx + 1,
			Column: col + 1,
		})
	}

	for i, line := range m.CodeLines {
		if match := forPattern.FindStringSubmatch(line); match != nil {
			add(match[1], model.DeclLoop, i)
		}
		for _, match := range letPattern.FindAllStringSubmatch(line, -1) {
			add(match[1], model.DeclLet, i)
		}
		if match := constPattern.FindStringSubmatch(line); match != nil {
			add(match[1], model.DeclConst, i)
		}
		if match := typePattern.FindStringSubmatch(line); match != nil {
			add(match[1], model.DeclType, i)
		}
	}

	for _, fn := range m.Functions {
		lineIdx := fn.StartLine - 1
		add(fn.Name, model.DeclFunction, lineIdx)
		for _, p := range fn.Params {
			add(p, model.DeclParam, lineIdx)
		}
	}

	return idents
}

func findImports(m *model.SourceModel) []model.Import {
	var imports []model.Import
	for i, line := range m.CodeLines {
		match := usePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		path := strings.TrimSpace(match[1])
		if path == "" {
			continue
		}
		imports = append(imports, model.Import{Path: path, Line: i + 1})
	}
	return imports
}

var codeLikePatterns = []string{
	"let ", "fn ", "use ", "impl ", "match ", "return", "if ", "for ", "while ",
	".unwrap()", "();", "-> ", "= ", "::",
}

// looksLikeCode judges whether a comment's content resembles Rust source
func looksLikeCode(content string) bool {
	content = strings.TrimSpace(content)
	if content == "" {
		return false
	}
	if strings.HasSuffix(content, ";") || strings.HasSuffix(content, "{") || strings.HasSuffix(content, "}") {
		return true
	}
	for _, p := range codeLikePatterns {
		if strings.Contains(content, p) {
			return true
		}
	}
	return false
}

// findCommentBlocks locates runs of plain // comments that resemble
// commented-out code. Doc comments (/// and //!) are skipped.
func findCommentBlocks(lines []string) []model.CommentBlock {
	var blocks []model.CommentBlock
	runStart := 0
	runLen := 0

	flush := func() {
		if runLen >= minCommentedCodeLines {
			blocks = append(blocks, model.CommentBlock{StartLine: runStart + 1, LineCount: runLen})
		}
		runLen = 0
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		isPlainComment := strings.HasPrefix(trimmed, "//") &&
			!strings.HasPrefix(trimmed, "///") && !strings.HasPrefix(trimmed, "//!")

		if isPlainComment && looksLikeCode(strings.TrimPrefix(trimmed, "//")) {
			if runLen == 0 {
				runStart = i
			}
			runLen++
			continue
		}
		flush()
	}
	flush()

	return blocks
}
