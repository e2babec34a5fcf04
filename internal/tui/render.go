package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/deckforge/internal/deck"
)

var (
	styleDefault  = tcell.StyleDefault
	styleTitle    = tcell.StyleDefault.Bold(true)
	styleFocused  = tcell.StyleDefault.Bold(true).Underline(true)
	styleSelected = tcell.StyleDefault.Reverse(true)
	styleStatus   = tcell.StyleDefault.Reverse(true)
	styleError    = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// render draws the zone panes and the status line.
func (u *UI) render() {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.screen.Clear()
	width, height := u.screen.Size()
	if width == 0 || height == 0 {
		u.screen.Show()
		return
	}

	paneWidth := width / len(zoneOrder)
	for i, zone := range zoneOrder {
		u.renderZone(zone, i*paneWidth, paneWidth, height-1, i == u.focus)
	}
	u.renderStatus(width, height-1)

	u.screen.Show()
}

// renderZone draws one zone pane: a title row then one row per entry.
func (u *UI) renderZone(zone string, x, width, height int, focused bool) {
	titleStyle := styleTitle
	if focused {
		titleStyle = styleFocused
	}
	title := fmt.Sprintf("%s (%d)", deck.DisplayName(zone), u.zoneCount(zone))
	drawText(u.screen, x+1, 0, width-2, title, titleStyle)

	selected := u.selected[zone]
	for i, entry := range u.deck.Entries(zone) {
		y := i + 1
		if y >= height {
			break
		}
		style := styleDefault
		if focused && i == selected {
			style = styleSelected
		}
		line := fmt.Sprintf("%dx %s", entry.Count, entry.Card.Name)
		drawText(u.screen, x+1, y, width-2, line, style)
	}
}

// renderStatus draws the bottom line with undo/redo hints or an error.
func (u *UI) renderStatus(width, y int) {
	if u.statusMsg != "" {
		drawText(u.screen, 0, y, width, u.statusMsg, styleError)
		return
	}
	drawText(u.screen, 0, y, width, u.statusLineLocked(), styleStatus)
}

// StatusLine returns the text currently shown on the status line.
func (u *UI) StatusLine() string {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.statusMsg != "" {
		return u.statusMsg
	}
	return u.statusLineLocked()
}

func (u *UI) statusLineLocked() string {
	undo := u.history.UndoDescription()
	if undo == "" {
		undo = "Undo"
	}
	redo := u.history.RedoDescription()
	if redo == "" {
		redo = "Redo"
	}
	return fmt.Sprintf("%s | %s | %d cards", undo, redo, u.deck.TotalCount())
}

func (u *UI) zoneCount(zone string) int {
	total := 0
	for _, entry := range u.deck.Entries(zone) {
		total += entry.Count
	}
	return total
}

// drawText writes a string clipped to maxWidth.
func drawText(s tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col-x >= maxWidth {
			break
		}
		s.SetContent(col, y, r, nil, style)
		col++
	}
}
