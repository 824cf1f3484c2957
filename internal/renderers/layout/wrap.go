package layout

import "strings"

// Measurer reports the rendered width of a string in points.
type Measurer interface {
	TextWidth(text string, style FontStyle, size float64) (float64, error)
}

// wrap breaks text into lines no wider than maxWidth. Explicit newlines
// start a new line; words wider than maxWidth are split by character.
func wrap(m Measurer, text string, style FontStyle, size, maxWidth float64) ([]string, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		wrapped, err := wrapParagraph(m, para, style, size, maxWidth)
		if err != nil {
			return nil, err
		}
		lines = append(lines, wrapped...)
	}
	return lines, nil
}

func wrapParagraph(m Measurer, para string, style FontStyle, size, maxWidth float64) ([]string, error) {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}, nil
	}

	var lines []string
	line := ""
	for _, word := range words {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		w, err := m.TextWidth(candidate, style, size)
		if err != nil {
			return nil, err
		}
		if w <= maxWidth {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}

		ww, err := m.TextWidth(word, style, size)
		if err != nil {
			return nil, err
		}
		if ww <= maxWidth {
			line = word
			continue
		}
		pieces, err := splitWord(m, word, style, size, maxWidth)
		if err != nil {
			return nil, err
		}
		lines = append(lines, pieces[:len(pieces)-1]...)
		line = pieces[len(pieces)-1]
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines, nil
}

// splitWord breaks a single long word. Every piece holds at least one rune.
func splitWord(m Measurer, word string, style FontStyle, size, maxWidth float64) ([]string, error) {
	var pieces []string
	var cur []rune
	for _, r := range word {
		next := append(cur, r)
		w, err := m.TextWidth(string(next), style, size)
		if err != nil {
			return nil, err
		}
		if w > maxWidth && len(cur) > 0 {
			pieces = append(pieces, string(cur))
			cur = []rune{r}
			continue
		}
		cur = next
	}
	return append(pieces, string(cur)), nil
}
