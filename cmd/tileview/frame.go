package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/katalvlaran/tilepath/astar"
	"github.com/katalvlaran/tilepath/tilegrid"
)

const (
	glyphWall   = '#'
	glyphFloor  = ' '
	glyphOpen   = '+'
	glyphClosed = '.'
	glyphPath   = '*'
	glyphStart  = 'S'
	glyphGoal   = 'G'
)

var glyphStyles = map[rune]tcell.Style{
	glyphWall:   tcell.StyleDefault.Foreground(tcell.ColorGray),
	glyphOpen:   tcell.StyleDefault.Foreground(tcell.ColorGreen),
	glyphClosed: tcell.StyleDefault.Foreground(tcell.ColorBlue),
	glyphPath:   tcell.StyleDefault.Foreground(tcell.ColorYellow),
	glyphStart:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
	glyphGoal:   tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
}

// buildFrame lays the search state over the map, one rune per cell.
// Later layers win: closed, open, path, then the endpoints.
func buildFrame(g *tilegrid.Grid, snap astar.Snapshot, start, goal tilegrid.Point) [][]rune {
	rows := make([][]rune, g.Height())
	for y := range rows {
		rows[y] = make([]rune, g.Width())
		for x := range rows[y] {
			if g.IsPassable(x, y) {
				rows[y][x] = glyphFloor
			} else {
				rows[y][x] = glyphWall
			}
		}
	}
	paint := func(ps []tilegrid.Point, r rune) {
		for _, p := range ps {
			rows[p.Y][p.X] = r
		}
	}
	paint(snap.Closed, glyphClosed)
	paint(snap.Open, glyphOpen)
	paint(snap.Path, glyphPath)
	rows[start.Y][start.X] = glyphStart
	rows[goal.Y][goal.X] = glyphGoal

	return rows
}

// statusLine summarizes a snapshot for the bottom row.
func statusLine(snap astar.Snapshot, movement tilegrid.Connectivity) string {
	line := fmt.Sprintf("%s %s iter=%d open=%d closed=%d",
		movement, snap.Phase, snap.Iteration, len(snap.Open), len(snap.Closed))
	switch snap.Phase {
	case astar.PhaseSucceeded:
		line += fmt.Sprintf(" steps=%d", snap.Path.Steps())
	case astar.PhaseFailed:
		line += " reason=" + snap.Reason.String()
	}
	return line + "  [r]estart [d]iagonal [q]uit"
}
