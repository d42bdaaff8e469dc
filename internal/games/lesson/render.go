package lesson

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/algo/tree"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/core"
)

const (
	minScreenW = 60
	minScreenH = 18
	cardsWidth = 30
	logHeight  = 7
)

var markColors = map[mark]core.Color{
	markIdle:     core.ColorGray,
	markFrontier: core.ColorYellow,
	markVisited:  core.ColorGreen,
	markSelected: core.ColorBrightCyan,
	markCurrent:  core.ColorBrightYellow,
	markRejected: core.ColorRed,
	markCycle:    core.ColorMagenta,
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Render draws the lesson: header, data panel, card list and step log.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenW < minScreenW || g.screenH < minScreenH {
		y := g.screenH / 2
		dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
		dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorGray)
		return
	}

	g.renderHeader(dst)

	body := core.NewRect(0, 1, g.screenW, g.screenH-2)
	top, logArea := body.SplitY(body.H - logHeight)
	dataArea, cardArea := top.SplitX(top.W - cardsWidth)

	b := newBoard()
	if g.anim != nil {
		b = replay(g.anim.steps(), g.anim.cursor)
	}

	dst.DrawTitledBox(dataArea, g.level.Summary, core.ColorBlue)
	inner := dataArea.Inset(1)
	switch {
	case g.graph != nil:
		g.renderGraph(dst, inner, b)
	case g.level.Tree != nil:
		g.renderTree(dst, inner, b)
	case g.level.DSU != nil:
		g.renderDSU(dst, inner, b)
	}

	g.renderCards(dst, cardArea)
	g.renderLog(dst, logArea)
	g.renderFooter(dst)

	if g.complete {
		g.renderComplete(dst)
	}
}

func (g *Game) renderHeader(dst *core.Screen) {
	title := fmt.Sprintf("Level %d · %s", g.level.Number, g.level.Title)
	dst.DrawTextColor(1, 0, title, core.ColorBrightWhite)

	status := fmt.Sprintf("Cards %d/%d  Score %d", g.visitedCount(), len(g.cards), g.Score())
	if g.paused {
		status = "PAUSED  " + status
	}
	dst.DrawTextColor(g.screenW-len([]rune(status))-1, 0, status, core.ColorYellow)
}

func (g *Game) renderGraph(dst *core.Screen, r core.Rect, b *board) {
	for i, v := range g.graph.Vertices() {
		y := r.Y + i
		if y >= r.Bottom() {
			break
		}
		m := b.nodes[v]
		if v == b.focus {
			m = markCurrent
		}
		x := dst.DrawTextColor(r.X, y, "● "+v, markColors[m])
		if label, ok := b.labels[v]; ok {
			x = dst.DrawTextColor(x+1, y, "d="+label, core.ColorCyan)
		}
		x = dst.DrawTextColor(max(x+1, r.X+10), y, "→", core.ColorGray)

		edges, _ := g.graph.Neighbors(v)
		for _, e := range edges {
			if x >= r.Right() {
				break
			}
			text := e.To
			if e.Weight != 0 {
				text += "(" + formatValue(e.Weight) + ")"
			}
			x = dst.DrawTextColor(x+1, y, text, markColors[b.edge(v, e.To)])
		}
	}
}

func (g *Game) renderTree(dst *core.Screen, r core.Rect, b *board) {
	rows := tree.Levels(g.level.Root())
	for depth, row := range rows {
		y := r.Y + depth*2
		if y >= r.Bottom() {
			break
		}
		slot := r.W / (len(row) + 1)
		for i, n := range row {
			id := strconv.Itoa(n.Val)
			m := b.nodes[id]
			if id == b.focus {
				m = markCurrent
			}
			dst.DrawTextColor(r.X+slot*(i+1)-len(id)/2, y, id, markColors[m])
		}
	}
}

func (g *Game) renderDSU(dst *core.Screen, r core.Rect, b *board) {
	for i, x := range g.level.DSU.Elements {
		y := r.Y + i
		if y >= r.Bottom() {
			break
		}
		m := b.nodes[x]
		if x == b.focus {
			m = markCurrent
		}
		end := dst.DrawTextColor(r.X, y, x, markColors[m])
		if p, ok := b.parent[x]; ok && p != x {
			dst.DrawTextColor(end+1, y, "→ "+p, core.ColorGray)
		} else {
			dst.DrawTextColor(end+1, y, "(root)", core.ColorGray)
		}
	}
}

func (g *Game) renderCards(dst *core.Screen, r core.Rect) {
	dst.DrawTitledBox(r, "Concept cards", core.ColorBlue)
	inner := r.Inset(1)
	for i, c := range g.cards {
		y := inner.Y + i*2
		if y >= inner.Bottom() {
			break
		}
		marker := "[ ]"
		if c.visited {
			marker = "[✓]"
		}
		color := core.ColorDefault
		if i == g.selected {
			marker = ">" + marker
			color = core.ColorBrightYellow
		} else {
			marker = " " + marker
		}
		dst.DrawTextClipped(inner, y, marker+" "+c.Title, color)
		if y+1 < inner.Bottom() {
			dst.DrawTextClipped(core.NewRect(inner.X+5, y+1, inner.W-5, 1), y+1, c.Algorithm, core.ColorGray)
		}
	}
}

func (g *Game) renderLog(dst *core.Screen, r core.Rect) {
	sel := g.cards[g.selected]
	title := "Steps"
	if g.anim != nil {
		sel = g.cards[g.anim.card]
		title = fmt.Sprintf("Steps %d/%d", g.anim.cursor, len(g.anim.steps()))
	}
	dst.DrawTitledBox(r, title, core.ColorBlue)
	inner := r.Inset(1)

	if sel.err != nil {
		dst.DrawTextClipped(inner, inner.Y, "error: "+sel.err.Error(), core.ColorRed)
		return
	}
	if g.anim == nil {
		dst.DrawTextClipped(inner, inner.Y, sel.Description, core.ColorDefault)
		return
	}

	steps := g.anim.steps()
	lines := inner.H
	if g.anim.done() {
		lines--
	}
	start := max(0, g.anim.cursor-lines)
	for i, s := range steps[start:g.anim.cursor] {
		color := core.ColorGray
		if start+i == g.anim.cursor-1 {
			color = core.ColorBrightWhite
		}
		dst.DrawTextClipped(inner, inner.Y+i, s.String(), color)
	}
	if g.anim.done() {
		res := g.anim.result
		line, color := res.Summary, core.ColorBrightGreen
		if res.Failure != "" {
			color = core.ColorOrange
		}
		dst.DrawTextClipped(inner, inner.Bottom()-1, strings.TrimSpace(line), color)
	}
}

func (g *Game) renderFooter(dst *core.Screen) {
	help := "↑/↓ card  enter play  p pause  ←/→ step  r restart  b back"
	dst.DrawTextColor(1, g.screenH-1, help, core.ColorGray)
}

func (g *Game) renderComplete(dst *core.Screen) {
	box := core.NewRect(g.screenW/2-16, g.screenH/2-2, 32, 5)
	for y := box.Y; y < box.Bottom(); y++ {
		dst.DrawHLine(box.X, y, box.W, ' ', core.ColorDefault)
	}
	dst.DrawBox(box, core.ColorBrightGreen)
	dst.DrawTextCentered(box.Y+1, "LEVEL COMPLETE", core.ColorBrightGreen)
	dst.DrawTextCentered(box.Y+2, fmt.Sprintf("Score %d", g.Score()), core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, "b: back to the mountain", core.ColorGray)
}
