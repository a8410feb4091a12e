package extractor

import (
	"strings"
	"unicode"
)

// TextFromContentStream decodes the literal strings shown by Tj, TJ, ' and "
// in a PDF content stream. Positioning operators become word breaks.
func TextFromContentStream(data []byte) string {
	var sb strings.Builder
	var pending []string

	flush := func(sep byte) {
		for _, s := range pending {
			sb.WriteString(s)
		}
		pending = pending[:0]
		if sep != 0 && sb.Len() > 0 {
			sb.WriteByte(sep)
		}
	}

	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c == '(':
			s, next := readLiteral(data, i)
			pending = append(pending, s)
			i = next
		case c == '<':
			if i+1 < len(data) && data[i+1] == '<' {
				i += 2
				continue
			}
			// Hex strings are glyph ids without a font map; skip them
			for i < len(data) && data[i] != '>' {
				i++
			}
			i++
		case c == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		case c == '[' || c == ']' || c == '>' || isSpace(c):
			i++
		case isOperatorStart(c):
			start := i
			for i < len(data) && !isSpace(data[i]) && !isDelimiter(data[i]) {
				i++
			}
			switch string(data[start:i]) {
			case "Tj", "TJ":
				flush(0)
			case "'", "\"":
				sb.WriteByte('\n')
				flush(0)
			case "Td", "TD", "Tm", "T*", "ET":
				flush(' ')
			default:
				// Operands in pending belong to an operator that shows no text
				if len(pending) > 0 && isAlpha(data[start]) {
					pending = pending[:0]
				}
			}
		default:
			i++
		}
	}
	flush(0)

	return collapseSpace(sb.String())
}

// readLiteral decodes a balanced, escaped string literal starting at data[start] == '('
func readLiteral(data []byte, start int) (string, int) {
	var sb strings.Builder
	depth := 0
	i := start
	for i < len(data) {
		c := data[i]
		switch {
		case c == '\\' && i+1 < len(data):
			i++
			switch e := data[i]; e {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'b', 'f':
			case '\r', '\n':
				// Line continuation
			default:
				if e >= '0' && e <= '7' {
					val := 0
					for n := 0; n < 3 && i < len(data) && data[i] >= '0' && data[i] <= '7'; n++ {
						val = val*8 + int(data[i]-'0')
						i++
					}
					sb.WriteByte(byte(val))
					continue
				}
				sb.WriteByte(e)
			}
		case c == '(':
			if depth > 0 {
				sb.WriteByte(c)
			}
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return sb.String(), i + 1
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
		i++
	}
	return sb.String(), i
}

func collapseSpace(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
			continue
		}
		if unicode.IsPrint(r) {
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	return strings.IndexByte("()<>[]{}/%", c) >= 0
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isOperatorStart(c byte) bool {
	return isAlpha(c) || c == '\'' || c == '"' || c == '*'
}
