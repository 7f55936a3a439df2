package markdown

import "strings"

// escapeText backslash-escapes characters that would otherwise be read as
// inline markdown syntax or raw HTML when the text is parsed back.
func escapeText(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch r {
		case '\\', '`', '*', '_', '[', ']', '~', '<':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// escapeLineStart guards paragraph lines whose first characters would be
// re-read as block syntax: headings, quotes, list markers, thematic breaks.
func escapeLineStart(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = escapeOneLineStart(line)
	}
	return strings.Join(lines, "\n")
}

func escapeOneLineStart(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if trimmed == "" {
		return line
	}
	lead := line[:len(line)-len(trimmed)]

	switch trimmed[0] {
	case '#', '>', '-', '+':
		return lead + "\\" + trimmed
	}

	// Ordered list markers: digits followed by a dot or paren.
	digits := 0
	for digits < len(trimmed) && trimmed[digits] >= '0' && trimmed[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(trimmed) && (trimmed[digits] == '.' || trimmed[digits] == ')') {
		return lead + trimmed[:digits] + "\\" + trimmed[digits:]
	}

	return line
}

func escapeTitle(title string) string {
	escaped := strings.ReplaceAll(title, "\\", "\\\\")
	return strings.ReplaceAll(escaped, "\"", "\\\"")
}
