package rule

import (
	"strings"

	"garbage-hunter/src/model"
)

// terribleNames is the deny-list of meaningless placeholder identifiers
var terribleNames = map[string]bool{
	"foo": true, "bar": true, "baz": true, "qux": true, "quux": true,
	"data": true, "info": true, "temp": true, "tmp": true, "val": true,
	"value": true, "item": true, "thing": true, "stuff": true, "obj": true,
	"object": true, "test": true, "example": true, "sample": true,
	"manager": true, "handler": true, "processor": true, "helper": true,
	"util": true, "utils": true, "func": true, "function": true,
}

// coreTerribleNames escalate the finding from mild to spicy
var coreTerribleNames = map[string]bool{
	"foo": true, "bar": true, "data": true, "temp": true, "stuff": true,
}

// TerribleNamingRule flags identifiers from the meaningless-name deny-list
type TerribleNamingRule struct {
	baseRule
}

// NewTerribleNamingRule creates a new terrible naming rule
func NewTerribleNamingRule() *TerribleNamingRule {
	return &TerribleNamingRule{baseRule{id: "terrible-naming", category: model.CategoryNaming}}
}

// Detect runs terrible naming detection
func (r *TerribleNamingRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	for _, id := range m.Identifiers {
		name := strings.ToLower(strings.TrimRight(id.Name, "0123456789"))
		if !terribleNames[name] {
			continue
		}

		severity := model.SeverityMild
		if coreTerribleNames[name] || id.Kind == model.DeclFunction {
			severity = model.SeveritySpicy
		}

		issues = append(issues, r.issue(m, id.Line, id.Column, severity, "naming.terrible", map[string]any{
			"name": id.Name,
			"kind": string(id.Kind),
		}))
	}
	return issues
}

// conventionalCounters are tolerated as short-lived loop counters
var conventionalCounters = map[string]bool{
	"i": true, "j": true, "k": true, "x": true, "y": true, "z": true, "_": true,
}

// SingleLetterVariableRule flags single-letter identifiers outside
// conventional loop-counter use
type SingleLetterVariableRule struct {
	baseRule
}

// NewSingleLetterVariableRule creates a new single letter variable rule
func NewSingleLetterVariableRule() *SingleLetterVariableRule {
	return &SingleLetterVariableRule{baseRule{id: "single-letter-variable", category: model.CategoryNaming}}
}

// Detect runs single letter variable detection
func (r *SingleLetterVariableRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	for _, id := range m.Identifiers {
		if len(id.Name) != 1 || id.Name == "_" {
			continue
		}
		if id.Kind == model.DeclLoop && conventionalCounters[id.Name] {
			continue
		}

		// a counter name used outside a loop binding is worse than an
		// odd letter inside one
		severity := model.SeverityMild
		if id.Kind != model.DeclLoop && conventionalCounters[id.Name] {
			severity = model.SeveritySpicy
		}

		issues = append(issues, r.issue(m, id.Line, id.Column, severity, "naming.single_letter", map[string]any{
			"name": id.Name,
			"kind": string(id.Kind),
		}))
	}
	return issues
}

// hungarianPrefixes are the type/scope prefixes of Hungarian notation
var hungarianPrefixes = []string{
	"str", "int", "bool", "float", "double", "char",
	"arr", "vec", "lst", "map",
	"g_", "m_", "s_", "p_",
	"sz", "lp", "dw",
}

// HungarianNotationRule flags identifiers with Hungarian-notation prefixes
type HungarianNotationRule struct {
	baseRule
}

// NewHungarianNotationRule creates a new hungarian notation rule
func NewHungarianNotationRule() *HungarianNotationRule {
	return &HungarianNotationRule{baseRule{id: "hungarian-notation", category: model.CategoryNaming}}
}

// Detect runs hungarian notation detection
func (r *HungarianNotationRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	for _, id := range m.Identifiers {
		prefix, ok := hungarianPrefix(id.Name)
		if !ok {
			continue
		}
		issues = append(issues, r.issue(m, id.Line, id.Column, model.SeverityMild, "naming.hungarian", map[string]any{
			"name":   id.Name,
			"prefix": prefix,
		}))
	}
	return issues
}

func hungarianPrefix(name string) (string, bool) {
	for _, prefix := range hungarianPrefixes {
		if !strings.HasPrefix(name, prefix) || len(name) <= len(prefix) {
			continue
		}
		rest := name[len(prefix):]
		if strings.HasSuffix(prefix, "_") {
			return prefix, true
		}
		// camelCase after the prefix: strName, intCount
		if rest[0] >= 'A' && rest[0] <= 'Z' {
			return prefix, true
		}
		// snake_case after the prefix: str_name
		if rest[0] == '_' && len(rest) > 1 {
			return prefix, true
		}
	}
	return "", false
}

// badAbbreviations maps opaque abbreviations to their readable form
var badAbbreviations = map[string]string{
	"mgr":  "manager",
	"mngr": "manager",
	"ctrl": "controller",
	"hdlr": "handler",
	"usr":  "user",
	"pwd":  "password",
	"cfg":  "config",
	"btn":  "button",
	"lbl":  "label",
	"txt":  "text",
	"img":  "image",
	"tbl":  "table",
	"cnt":  "count",
	"calc": "calculate",
}

// AbbreviationAbuseRule flags opaque abbreviations in identifier names
type AbbreviationAbuseRule struct {
	baseRule
}

// NewAbbreviationAbuseRule creates a new abbreviation abuse rule
func NewAbbreviationAbuseRule() *AbbreviationAbuseRule {
	return &AbbreviationAbuseRule{baseRule{id: "abbreviation-abuse", category: model.CategoryNaming}}
}

// Detect runs abbreviation abuse detection
func (r *AbbreviationAbuseRule) Detect(m *model.SourceModel) []model.Issue {
	var issues []model.Issue
	for _, id := range m.Identifiers {
		lower := strings.ToLower(id.Name)

		full, ok := badAbbreviations[lower]
		if !ok {
			// also catch the abbreviation as a leading word: usr_name
			if idx := strings.Index(lower, "_"); idx > 0 {
				full, ok = badAbbreviations[lower[:idx]]
			}
		}
		if !ok {
			continue
		}

		issues = append(issues, r.issue(m, id.Line, id.Column, model.SeverityMild, "naming.abbreviation", map[string]any{
			"name":       id.Name,
			"suggestion": full,
		}))
	}
	return issues
}
