package layout

import (
	"strings"

	"github.com/inkframe/inkframe/internal/textdraw"
)

// WrapText greedily wraps text so no line measures wider than maxWidth at
// the given size. Words never split: a single word wider than maxWidth gets
// a line to itself. Joining the returned lines with spaces reproduces the
// input word sequence exactly.
func WrapText(fonts *textdraw.FontManager, text string, size float64, maxWidth int) ([]string, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		candidate := line + " " + word
		w, err := fonts.TextWidth(size, candidate)
		if err != nil {
			return nil, err
		}
		if w <= maxWidth {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = word
	}
	return append(lines, line), nil
}

// wrapWidthStep is how much the target width loosens per attempt while
// hunting the narrowest wrap for a line count.
const wrapWidthStep = 8

// wrapForLineCount wraps text into exactly lineCount lines at the
// narrowest width that keeps every line at minWords words or more (the
// last line may run short when the text itself does). Returns false when
// no width up to maxWidth produces such a wrap.
func wrapForLineCount(fonts *textdraw.FontManager, text string, size float64, lineCount, minWords, maxWidth int) ([]string, bool, error) {
	words := strings.Fields(text)
	if len(words) == 0 || lineCount < 1 {
		return nil, false, nil
	}
	if lineCount == 1 {
		w, err := fonts.TextWidth(size, strings.Join(words, " "))
		if err != nil {
			return nil, false, err
		}
		if w > maxWidth {
			return nil, false, nil
		}
		return []string{strings.Join(words, " ")}, true, nil
	}

	total, err := fonts.TextWidth(size, strings.Join(words, " "))
	if err != nil {
		return nil, false, err
	}
	for width := total / lineCount; width <= maxWidth; width += wrapWidthStep {
		lines, err := WrapText(fonts, text, size, width)
		if err != nil {
			return nil, false, err
		}
		if len(lines) != lineCount {
			continue
		}
		if !linesSatisfyMinWords(lines, minWords) {
			continue
		}
		return lines, true, nil
	}
	return nil, false, nil
}

func linesSatisfyMinWords(lines []string, minWords int) bool {
	for i, line := range lines {
		n := len(strings.Fields(line))
		if n < minWords && i != len(lines)-1 {
			return false
		}
	}
	return true
}
