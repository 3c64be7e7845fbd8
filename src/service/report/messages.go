package report

import (
	"fmt"
	"sort"
	"strings"

	"garbage-hunter/src/model"
)

// messageTexts maps issue message keys to their report line
var messageTexts = map[string]string{
	"naming.terrible":      "identifier says nothing about what it holds",
	"naming.single_letter": "single letter name outside a loop counter",
	"naming.hungarian":     "hungarian notation prefix encodes the type in the name",
	"naming.abbreviation":  "opaque abbreviation, spell it out",

	"complexity.deep_nesting":  "nesting too deep, extract the inner blocks",
	"complexity.long_function": "function is too long to follow",
	"complexity.god_function":  "function does too many things at once",

	"duplication.repeated_block": "duplicated block, extract a shared function",

	"basics.unwrap":                     "unwrap turns a recoverable error into a crash",
	"basics.clone":                      "clone papers over an ownership problem",
	"basics.string_format_conversion":   "format! used as a plain conversion, use to_string",
	"basics.string_round_trip":          "pointless String/&str round trip",
	"basics.string_empty_from":          "String::new is the idiomatic empty string",
	"basics.vec_len_zero":               "use is_empty instead of comparing len to zero",
	"basics.vec_len_positive":           "use !is_empty instead of checking len is positive",
	"basics.vec_push_literal":           "fixed pushes after Vec::new, use the vec! macro",
	"basics.iterator_collect_reiterate": "collect followed by iter, keep the chain lazy",
	"basics.iterator_clone_collect":     "iter().cloned().collect(), to_vec is shorter",
	"basics.iterator_index_loop":        "index loop over a collection, iterate it directly",
	"basics.match_on_bool":              "match on a bool, use an if expression",
	"basics.match_single_arm":           "single-arm match with a discarded wildcard, use if let",
	"basics.print_debugging":            "debug print left in non-test code",
	"basics.panic_macro":                "panic macro in non-test code",

	"advanced.closure_pileup":    "several closures piled onto one line",
	"advanced.closure_too_long":  "closure long enough to deserve a name",
	"advanced.lifetime_soup":     "too many named lifetimes in one signature",
	"advanced.trait_bound_stack": "trait bounds stacked past readability",
	"advanced.generic_overload":  "too many type parameters",

	"features.unsafe_transmute":    "transmute reinterprets memory, near-certain undefined behavior",
	"features.unsafe_block":        "unsafe block, the compiler cannot help here",
	"features.unsafe_function":     "whole function marked unsafe",
	"features.ffi_extern_block":    "extern block crosses the FFI boundary",
	"features.ffi_no_mangle":       "no_mangle exports an unmangled symbol",
	"features.ffi_c_types":         "raw C types in the signature",
	"features.async_blocking_call": "blocking call inside async stalls the executor",
	"features.async_await_chain":   "long await chain on one expression",
	"features.async_without_await": "async function that never awaits",
	"features.channel_busy_poll":   "try_recv in a loop busy-polls the channel",
	"features.channel_sprawl":      "many channels wired in one place",
	"features.macro_definition":    "declarative macro, prefer a function where possible",

	"structure.file_too_long":        "file exceeds the line budget, split it",
	"structure.import_duplicate":     "duplicate use declaration",
	"structure.import_stray":         "use declaration buried below code",
	"structure.import_wildcard":      "wildcard import pulls in unknown names",
	"structure.import_unordered":     "use declarations out of alphabetical order",
	"structure.dead_code":            "statement after a terminator never executes",
	"structure.module_inline_nested": "inline module nested inside another block",
	"structure.magic_number":         "bare numeric literal, name it as a const",
	"structure.commented_code":       "commented-out code block, delete it",
	"structure.todo_marker":          "unresolved marker comment",
}

// Describe renders the human-readable finding text for an issue,
// appending the rule's captured data in a fixed key order
func Describe(issue model.Issue) string {
	text, ok := messageTexts[issue.MessageKey]
	if !ok {
		text = issue.MessageKey
	}
	if len(issue.Data) == 0 {
		return text
	}

	keys := make([]string, 0, len(issue.Data))
	for k := range issue.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	details := make([]string, 0, len(keys))
	for _, k := range keys {
		details = append(details, fmt.Sprintf("%s=%v", k, issue.Data[k]))
	}
	return fmt.Sprintf("%s (%s)", text, strings.Join(details, ", "))
}
