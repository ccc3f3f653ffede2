// Package ini parses INI-style configuration text.
//
// The accepted format is line oriented:
//
//	# comment
//	[section]          # trailing comment
//	key = value        # trailing comment
//
// Blank lines and lines starting with '#' are ignored. A section header
// names the section that following items belong to. Whitespace inside the
// brackets is part of the name, so "[ A ]" names the section " A ". Item
// names and values are single tokens: they contain no whitespace, '=' or
// '#'. Values are always strings.
//
// [Parse] returns a [Document] that keeps the input order of sections and
// items. When sections are disabled with [WithSections], headers are
// recognized and skipped and every item lands in one flat map.
//
// A malformed line aborts parsing with a [*ParsingError] reporting the
// source name, the line number and the offending line.
//
// Documents render back to canonical INI with [Document.Format]. Any
// decoded tree renders to JSON or YAML with [FormatJSON] and [FormatYAML].
package ini
