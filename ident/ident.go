// Package ident implements identifier and record-id (Thing) rendering for
// SurrealQL: the angle-bracket quoting scheme SurrealDB uses for
// identifiers that aren't bare words, and table:id Thing syntax including
// record ranges.
//
// Grounded on the teacher's contrib/surrealql escapeIdent/isReservedWord
// (character-class + reserved-word detection), adapted from that file's
// backtick quoting to the angle-bracket `⟨ ⟩` scheme this wire protocol
// actually uses.
package ident

import (
	"strconv"
	"strings"
)

// reserved holds the small, closed set of SurrealQL keywords that force an
// identifier to be quoted even when it would otherwise be a bare word.
var reserved = map[string]bool{
	"SELECT": true, "FROM": true, "WHERE": true, "ORDER": true, "BY": true,
	"LIMIT": true, "START": true, "FETCH": true, "GROUP": true, "SPLIT": true,
	"RETURN": true, "PARALLEL": true, "EXPLAIN": true, "CREATE": true,
	"UPDATE": true, "DELETE": true, "RELATE": true, "INSERT": true,
	"DEFINE": true, "REMOVE": true, "INFO": true, "USE": true, "BEGIN": true,
	"CANCEL": true, "COMMIT": true, "IF": true, "ELSE": true, "THEN": true,
	"END": true, "BREAK": true, "CONTINUE": true, "FUNCTION": true,
	"PARAM": true, "FIELD": true, "TYPE": true, "DEFAULT": true,
	"ASSERT": true, "PERMISSIONS": true, "DURATION": true, "FLEXIBLE": true,
	"SET": true,
}

func isReserved(word string) bool {
	return reserved[strings.ToUpper(word)]
}

func isBareWord(s string) bool {
	if s == "" {
		return false
	}
	if _, err := strconv.Atoi(s); err == nil {
		// purely numeric identifiers must always be quoted
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return !isReserved(s)
}

// Quote renders a raw identifier as SurrealQL, quoting with angle brackets
// whenever the identifier is empty, purely numeric, digit-leading,
// contains a non-alphanumeric/underscore character, or is a reserved word.
// The closing bracket is escaped as "\⟩" inside a quoted identifier.
//
// Quote is idempotent: an already-quoted identifier (starting with "⟨" and
// ending with "⟩") is returned unchanged rather than wrapped again, since a
// quoted identifier's own brackets aren't bare-word characters and would
// otherwise always fail isBareWord and get re-escaped.
func Quote(raw string) string {
	if strings.HasPrefix(raw, "⟨") && strings.HasSuffix(raw, "⟩") {
		return raw
	}
	if isBareWord(raw) {
		return raw
	}
	escaped := strings.ReplaceAll(raw, "⟩", `\⟩`)
	return "⟨" + escaped + "⟩"
}

// Ident is a SurrealQL identifier (field name, table name, parameter name).
type Ident string

func (i Ident) String() string       { return Quote(string(i)) }
func (i Ident) SurrealString() string { return i.String() }
