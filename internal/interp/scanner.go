package interp

import "strings"

// span is a single {{...}} expression located in the input text
type span struct {
	start   int    // offset of the opening {{
	end     int    // offset just past the closing }}
	content string // trimmed text between the braces
}

// nextSpan finds the first {{...}} expression at or after from. The closing
// braces are matched outside quoted regions so helper arguments may contain
// literal braces inside quotes.
func nextSpan(input string, from int) (span, bool) {
	start := strings.Index(input[from:], "{{")
	if start < 0 {
		return span{}, false
	}
	start += from

	var quote byte
	for i := start + 2; i < len(input); i++ {
		c := input[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '}' && i+1 < len(input) && input[i+1] == '}':
			return span{
				start:   start,
				end:     i + 2,
				content: strings.TrimSpace(input[start+2 : i]),
			}, true
		}
	}
	return span{}, false
}

// block is a matched {{#keyword arg}}...{{/keyword}} region, with an
// optional top-level {{else}} split.
type block struct {
	start    int
	end      int
	arg      string
	body     string
	elseBody string
	hasElse  bool
}

// findBlock locates the first block of the given keyword at or after from,
// matching its closing tag across nested blocks of the same keyword. When
// splitElse is set, a top-level {{else}} splits the body in two.
func findBlock(input, keyword string, from int, splitElse bool) (block, bool) {
	openPrefix := "#" + keyword
	closeTag := "/" + keyword

	pos := from
	for {
		sp, ok := nextSpan(input, pos)
		if !ok {
			return block{}, false
		}
		pos = sp.end

		if sp.content != openPrefix && !strings.HasPrefix(sp.content, openPrefix+" ") {
			continue
		}

		b := block{
			start: sp.start,
			arg:   strings.TrimSpace(strings.TrimPrefix(sp.content, openPrefix)),
		}

		depth := 1
		bodyStart := sp.end
		elseAt := -1 // span bounds of the top-level else, if any
		elseEnd := -1
		inner := sp.end
		for depth > 0 {
			next, ok := nextSpan(input, inner)
			if !ok {
				// unterminated block; leave it for the caller to skip
				return block{}, false
			}
			switch {
			case next.content == openPrefix || strings.HasPrefix(next.content, openPrefix+" "):
				depth++
			case next.content == closeTag:
				depth--
				if depth == 0 {
					b.end = next.end
					if elseAt >= 0 {
						b.hasElse = true
						b.body = input[bodyStart:elseAt]
						b.elseBody = input[elseEnd:next.start]
					} else {
						b.body = input[bodyStart:next.start]
					}
					return b, true
				}
			case splitElse && next.content == "else" && depth == 1 && elseAt < 0:
				elseAt = next.start
				elseEnd = next.end
			}
			inner = next.end
		}
	}
}
