// Package csvio implements the contact import/export transform: a
// delimiter-sniffing parser for pasted or uploaded CSV text and a quoted
// serializer for downloads. encoding/csv is deliberately not used: the import
// side must tolerate half-quoted, inconsistently delimited files that users
// paste from spreadsheets, which the strict reader rejects.
package csvio

import (
	"regexp"
	"strings"
)

var candidateDelims = []rune{',', ';', '\t'}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Row is one parsed contact line. Line is the 1-based line number in the
// original input, kept for error reporting.
type Row struct {
	Line  int
	Name  string
	Email string
}

// ExportRow is one contact to serialize.
type ExportRow struct {
	Name     string
	Email    string
	Category string
}

// ValidEmail reports whether s has a local@domain.tld shape. Intentionally
// RFC-light: it filters obvious junk without rejecting unusual but real
// addresses.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Sniff picks the delimiter by counting candidate occurrences over the first
// five non-blank lines. Comma wins ties and empty input.
func Sniff(text string) rune {
	lines := splitLines(text)
	if len(lines) > 5 {
		lines = lines[:5]
	}
	sample := strings.Join(lines, "\n")

	best := ','
	bestCount := strings.Count(sample, ",")
	for _, d := range candidateDelims[1:] {
		if n := strings.Count(sample, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// Parse splits text into contact rows using the sniffed delimiter. The first
// two columns map to (name, email). A leading header row mentioning "name"
// and "mail" is dropped, as are rows where both fields are empty. Email
// validity is not checked here; callers report invalid addresses per row.
func Parse(text string) []Row {
	delim := Sniff(text)

	var rows []Row
	firstIsHeader := false
	for i, line := range strings.Split(normalizeNewlines(text), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, string(delim))
		for i, f := range fields {
			fields[i] = unquote(strings.TrimSpace(f))
		}

		name := fields[0]
		email := ""
		if len(fields) > 1 {
			email = fields[1]
		}
		if name == "" && email == "" {
			continue
		}
		if len(rows) == 0 {
			joined := strings.ToLower(strings.Join(fields, " "))
			firstIsHeader = strings.Contains(joined, "name") && strings.Contains(joined, "mail")
		}
		rows = append(rows, Row{Line: i + 1, Name: name, Email: email})
	}

	// A header only counts as one when data rows follow it.
	if firstIsHeader && len(rows) > 1 {
		rows = rows[1:]
	}
	return rows
}

// Export serializes rows as standard CSV: every field double-quoted with
// internal quotes doubled, a header row first.
func Export(rows []ExportRow) string {
	var b strings.Builder
	writeRecord(&b, "name", "email", "category")
	for _, r := range rows {
		writeRecord(&b, r.Name, r.Email, r.Category)
	}
	return b.String()
}

func writeRecord(b *strings.Builder, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// splitLines splits on universal newlines and drops blank lines.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(normalizeNewlines(text), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// unquote strips one layer of surrounding quote characters.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
