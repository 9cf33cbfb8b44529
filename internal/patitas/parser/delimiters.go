package parser

import "github.com/lbliii/patitas/internal/patitas/ast"

// frame is one level of the delimiter-resolution stack: either the root
// (isDelim=false) or an unmatched opening delimiter run, accumulating
// the inline nodes seen since it opened.
type frame struct {
	isDelim  bool
	char     byte
	strike   bool
	remaining int // 1 or 2 delimiter characters still unconsumed
	start    int
	children []ast.Node
}

// resolveDelimiters runs the stack-based matching pass described atop
// inline.go: a closing delimiter run matches the nearest open frame of
// the same character, flushing any intervening unmatched frames to
// literal text first.
func resolveDelimiters(items []inlineItem) []ast.Node {
	frames := []*frame{{}}

	for _, it := range items {
		top := frames[len(frames)-1]
		switch it.kind {
		case itemText:
			top.children = append(top.children, ast.NewText(it.start, it.end, it.text))
		case itemNode:
			top.children = append(top.children, it.node)
		case itemDelim:
			matched := -1
			if it.canClose {
				for idx := len(frames) - 1; idx >= 1; idx-- {
					if frames[idx].isDelim && frames[idx].char == it.char {
						matched = idx
						break
					}
				}
			}
			if matched >= 0 {
				closeLen := it.runLen
				if closeLen > 2 {
					closeLen = 2
				}
				for len(frames)-1 > matched {
					flushUnmatched(&frames)
				}
				opener := frames[matched]
				usable := opener.remaining
				if closeLen < usable {
					usable = closeLen
				}
				strong := usable >= 2

				if opener.remaining > usable {
					leftover := opener.remaining - usable
					opener.children = append([]ast.Node{literalDelim(opener.char, leftover, opener.start)}, opener.children...)
				}

				frames = frames[:matched]
				parent := frames[len(frames)-1]

				var node ast.Node
				switch {
				case opener.strike:
					node = ast.NewStrikethrough(opener.start, it.end, nil, opener.children)
				case strong:
					node = ast.NewStrong(opener.start, it.end, nil, opener.children)
				default:
					node = ast.NewEmphasis(opener.start, it.end, nil, opener.children)
				}
				parent.children = append(parent.children, node)

				if it.runLen > usable {
					parent.children = append(parent.children, literalDelim(it.char, it.runLen-usable, it.start+usable))
				}
				continue
			}

			if it.canOpen {
				if it.runLen > 2 {
					top.children = append(top.children, literalDelim(it.char, it.runLen-2, it.start))
				}
				frames = append(frames, &frame{
					isDelim: true, char: it.char, strike: it.char == '~',
					remaining: minInt2(it.runLen, 2), start: it.start,
				})
			} else {
				top.children = append(top.children, literalDelim(it.char, it.runLen, it.start))
			}
		}
	}

	for len(frames) > 1 {
		flushUnmatched(&frames)
	}
	return frames[0].children
}

// flushUnmatched pops the top frame (an opener that never found a
// matching closer) and merges its literal marker text plus its
// accumulated children into the new top frame, in source order.
func flushUnmatched(frames *[]*frame) {
	fs := *frames
	top := fs[len(fs)-1]
	parent := fs[len(fs)-2]
	parent.children = append(parent.children, literalDelim(top.char, top.remaining, top.start))
	parent.children = append(parent.children, top.children...)
	*frames = fs[:len(fs)-1]
}

func literalDelim(char byte, n, start int) *ast.TextNode {
	b := make([]byte, n)
	for i := range b {
		b[i] = char
	}
	return ast.NewText(start, start+n, b)
}

func minInt2(a, b int) int {
	if a < b {
		return a
	}
	return b
}
