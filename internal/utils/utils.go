package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var durationRegex = regexp.MustCompile(`^\d+[mhd]?$`)

// IsValidDuration reports whether s matches the duration grammar: an
// integer, optionally suffixed with m (minutes), h (hours) or d (days).
func IsValidDuration(s string) bool {
	return durationRegex.MatchString(s)
}

// ToMinutes converts a duration in the grammar accepted by IsValidDuration
// to minutes. No suffix means minutes. Callers validate first.
func ToMinutes(s string) int {
	switch {
	case strings.HasSuffix(s, "m"):
		m, _ := strconv.Atoi(strings.TrimSuffix(s, "m"))
		return m
	case strings.HasSuffix(s, "h"):
		h, _ := strconv.Atoi(strings.TrimSuffix(s, "h"))
		return h * 60
	case strings.HasSuffix(s, "d"):
		d, _ := strconv.Atoi(strings.TrimSuffix(s, "d"))
		return d * 24 * 60
	}
	m, _ := strconv.Atoi(s)
	return m
}

// SplitArgs splits a command line on whitespace, keeping double-quoted
// sections together so titles and poll questions may contain spaces. Quotes
// are stripped from the result; an unterminated quote runs to end of line.
func SplitArgs(s string) []string {
	var args []string
	var cur strings.Builder
	inQuote := false
	hasCur := false

	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			hasCur = true
		case !inQuote && (r == ' ' || r == '\t' || r == '\n'):
			if hasCur {
				args = append(args, cur.String())
				cur.Reset()
				hasCur = false
			}
		default:
			cur.WriteRune(r)
			hasCur = true
		}
	}
	if hasCur {
		args = append(args, cur.String())
	}
	return args
}
