package query

import (
	"strings"

	"github.com/vegasq/mochadb/errors"
)

// keywordPos is the location of a primary keyword at nesting depth zero
type keywordPos struct {
	Keyword Keyword
	Start   int
	End     int
}

// isWordByte reports whether b can be part of a word. Dots join
// table.column references so that keyword spellings after a dot never
// count as keywords.
func isWordByte(b byte) bool {
	return b == '_' || b == '.' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') || b >= 0x80
}

// scanPrimary returns every primary keyword found at depth zero. Parentheses
// and MUST clauses nest separately: MUST opens a clause only outside
// parentheses and any other clause, and END closes one only outside
// parentheses. Elsewhere both are plain words. Quoted text is skipped.
func scanPrimary(text string) ([]keywordPos, error) {
	var found []keywordPos
	parens, must := 0, false
	for i := 0; i < len(text); {
		ch := text[i]
		switch {
		case ch == '\'' || ch == '"':
			j := strings.IndexByte(text[i+1:], ch)
			if j < 0 {
				return nil, errors.Wrapf(errors.ErrGrammar, "unterminated quote at offset %d", i)
			}
			i += j + 2
			continue
		case ch == '(':
			parens++
		case ch == ')':
			parens--
			if parens < 0 {
				return nil, errors.Wrapf(errors.ErrGrammar, "unbalanced ')' at offset %d", i)
			}
		case isWordByte(ch):
			j := i
			for j < len(text) && isWordByte(text[j]) {
				j++
			}
			word := strings.ToUpper(text[i:j])
			if kw, ok := primaryKeywords[word]; ok && parens == 0 && !must {
				found = append(found, keywordPos{Keyword: kw, Start: i, End: j})
			}
			if parens == 0 {
				switch {
				case word == "MUST" && !must:
					must = true
				case word == wordEnd && must:
					must = false
				}
			}
			i = j
			continue
		}
		i++
	}
	if parens != 0 {
		return nil, errors.Wrap(errors.ErrGrammar, "unclosed '('")
	}
	if must {
		return nil, errors.Wrap(errors.ErrGrammar, "MUST without END")
	}
	return found, nil
}

// LocateNextPrimary returns the offset of the first primary keyword at
// depth zero that starts at or after from, or -1 when there is none.
func LocateNextPrimary(text string, from int) (int, error) {
	found, err := scanPrimary(text)
	if err != nil {
		return -1, err
	}
	for _, kp := range found {
		if kp.Start >= from {
			return kp.Start, nil
		}
	}
	return -1, nil
}

// ExtractClause splits the leading clause off text. The clause runs from
// its keyword to the next primary keyword at the same depth. A MUST body is
// returned without its closing END.
func ExtractClause(text string) (Clause, string, error) {
	text = strings.TrimSpace(text)
	found, err := scanPrimary(text)
	if err != nil {
		return Clause{}, "", err
	}
	if len(found) == 0 || found[0].Start != 0 {
		return Clause{}, "", errors.Wrapf(errors.ErrGrammar, "expected a clause keyword at %q", truncate(text, 32))
	}

	first := found[0]
	end := len(text)
	if len(found) > 1 {
		end = found[1].Start
	}
	c := Clause{Keyword: first.Keyword, Body: strings.TrimSpace(text[first.End:end])}
	if c.Keyword == KeywordMust {
		body, ok := trimTrailingWord(c.Body, wordEnd)
		if !ok {
			return Clause{}, "", errors.Wrap(errors.ErrGrammar, "MUST clause must close with END")
		}
		c.Body = body
	}
	return c, text[end:], nil
}

// splitClauses extracts every clause of text in order.
func splitClauses(text string) ([]Clause, error) {
	var clauses []Clause
	rest := strings.TrimSpace(text)
	for rest != "" {
		c, remaining, err := ExtractClause(rest)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, c)
		if len(clauses) > MaxClauses {
			return nil, errors.Wrapf(ErrTooManyClauses, "max %d", MaxClauses)
		}
		rest = strings.TrimSpace(remaining)
	}
	return clauses, nil
}

// SplitTags reads the leading @-tags of a query and returns them with the
// rest of the text. Each tag may appear once.
func SplitTags(text string) ([]Tag, string, error) {
	var tags []Tag
	seen := map[Tag]bool{}
	rest := strings.TrimSpace(text)
	for strings.HasPrefix(rest, "@") {
		end := strings.IndexFunc(rest, func(r rune) bool {
			return r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
		if end < 0 {
			end = len(rest)
		}
		word := strings.ToUpper(rest[:end])
		tag, ok := tagNames[word]
		if !ok {
			return nil, "", errors.Wrapf(errors.ErrGrammar, "unknown tag %q", rest[:end])
		}
		if seen[tag] {
			return nil, "", errors.Wrapf(errors.ErrGrammar, "tag %s appears more than once", tag)
		}
		seen[tag] = true
		tags = append(tags, tag)
		rest = strings.TrimSpace(rest[end:])
	}
	return tags, rest, nil
}

// splitTopLevel splits s on sep outside quotes and parentheses.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth, start := 0, 0
	var quote byte
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == '(':
			depth++
		case ch == ')':
			depth--
		case ch == sep && depth == 0:
			parts = append(parts, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}

// splitWord splits s on every whole-word, case-insensitive occurrence of
// word found outside quotes and parentheses.
func splitWord(s, word string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); {
		ch := s[i]
		switch {
		case ch == '\'' || ch == '"':
			j := strings.IndexByte(s[i+1:], ch)
			if j < 0 {
				i = len(s)
				continue
			}
			i += j + 2
			continue
		case ch == '(':
			depth++
		case ch == ')':
			depth--
		case isWordByte(ch):
			j := i
			for j < len(s) && isWordByte(s[j]) {
				j++
			}
			if depth == 0 && strings.EqualFold(s[i:j], word) {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = j
			}
			i = j
			continue
		}
		i++
	}
	return append(parts, strings.TrimSpace(s[start:]))
}

// trimTrailingWord removes word from the end of s when it is the last
// whole word.
func trimTrailingWord(s, word string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < len(word) || !strings.EqualFold(s[len(s)-len(word):], word) {
		return s, false
	}
	head := s[:len(s)-len(word)]
	if head != "" && isWordByte(head[len(head)-1]) {
		return s, false
	}
	return strings.TrimSpace(head), true
}

// unquote strips one pair of matching single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
