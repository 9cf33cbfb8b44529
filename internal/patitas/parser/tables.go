package parser

import (
	"strings"

	"github.com/lbliii/patitas/internal/patitas/ast"
	"github.com/lbliii/patitas/internal/patitas/token"
)

// tryParseTable attempts to parse a GFM table starting at toks[i]: a
// header row followed immediately by a delimiter row of the form
// "|---|:--:|--:|". It reports ok=false (rather than erroring) when the
// second row isn't a valid delimiter row, so the caller can fall back to
// ordinary paragraph parsing.
func (p *Parser) tryParseTable(toks []token.Token, i int, full []byte) (ast.Node, int, bool) {
	if i+1 >= len(toks) || toks[i+1].Kind != token.TableRow {
		return nil, i, false
	}
	align, ok := parseDelimiterRow(toks[i+1].Text())
	if !ok {
		return nil, i, false
	}

	start := toks[i].Start
	headerCells := splitTableRow(toks[i].Text())
	headerRow := p.buildTableRow(toks[i], headerCells, true, full)

	rows := []ast.Node{headerRow}
	j := i + 2
	for j < len(toks) && toks[j].Kind == token.TableRow {
		cells := splitTableRow(toks[j].Text())
		rows = append(rows, p.buildTableRow(toks[j], cells, false, full))
		j++
	}

	end := toks[j-1].End
	return ast.NewTable(start, end, full[start:end], rows, align), j, true
}

func (p *Parser) buildTableRow(t token.Token, cells []string, header bool, full []byte) *ast.TableRowNode {
	children := make([]ast.Node, 0, len(cells))
	for _, c := range cells {
		inline := p.parseInline([]byte(c), t.Start)
		children = append(children, ast.NewTableCell(t.Start, t.End, []byte(c), inline))
	}
	return ast.NewTableRow(t.Start, t.End, full[t.Start:t.End], children, header)
}

// splitTableRow splits a row on unescaped, unquoted '|', trimming a
// leading/trailing empty cell produced by optional outer pipes and
// trimming whitespace from each cell.
func splitTableRow(line string) []string {
	var cells []string
	var cur strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '\\' && i+1 < len(line) {
			cur.WriteByte(c)
			cur.WriteByte(line[i+1])
			i++
			continue
		}
		if c == '|' {
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	cells = append(cells, strings.TrimSpace(cur.String()))

	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

// parseDelimiterRow validates a GFM table delimiter row and extracts its
// per-column alignment, e.g. "| :--- | :---: | ---: |".
func parseDelimiterRow(line string) ([]ast.ColumnAlign, bool) {
	cells := splitTableRow(line)
	if len(cells) == 0 {
		return nil, false
	}
	align := make([]ast.ColumnAlign, len(cells))
	for i, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, false
		}
		left := strings.HasPrefix(c, ":")
		right := strings.HasSuffix(c, ":")
		body := strings.Trim(c, ":")
		if body == "" || strings.Trim(body, "-") != "" {
			return nil, false
		}
		switch {
		case left && right:
			align[i] = ast.AlignCenter
		case left:
			align[i] = ast.AlignLeft
		case right:
			align[i] = ast.AlignRight
		default:
			align[i] = ast.AlignNone
		}
	}
	return align, true
}
