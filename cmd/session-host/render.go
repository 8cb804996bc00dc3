package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/hostkeys/input"
)

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorLightCyan)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePending = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorYellow)
	styleWarn    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleModal   = tcell.StyleDefault.Background(tcell.ColorDarkBlue).Foreground(tcell.ColorWhite)
)

// drawText writes s at (x, y) and returns the column after it
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}

func fillRow(s tcell.Screen, x0, x1, y int, style tcell.Style) {
	for x := x0; x < x1; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

func (a *app) draw(s tcell.Screen) {
	s.Clear()
	w, h := s.Size()
	snap := a.view.Snapshot()
	pending, cause := a.jump.Pending()

	drawText(s, 1, 0, styleTitle, "Session host")
	drawText(s, 15, 0, styleDim, "page "+a.page)

	if snap.ProductCount == 0 {
		drawText(s, 1, 2, styleWarn, "No products")
	} else {
		name := snap.ProductName
		if edited, ok := a.edited[snap.Product]; ok && edited != "" {
			name = edited
		}
		drawText(s, 1, 2, styleDefault, fmt.Sprintf("Product %d/%d: %s", snap.Product+1, snap.ProductCount, name))
		drawText(s, 1, 3, styleDefault, fmt.Sprintf("Image   %d/%d: %s", snap.Image+1, snap.ImageCount, snap.ImageName))
	}

	x := drawText(s, 1, 5, styleDim, "Jump: ")
	if pending != "" {
		drawText(s, x, 5, stylePending, pending+"_")
	} else if cause == input.CauseExpire {
		drawText(s, x, 5, styleDim, "(expired)")
	}

	if snap.LastEvent != "" {
		drawText(s, 1, 6, styleDim, "Last: "+snap.LastEvent)
	}
	if snap.Rejected != "" {
		drawText(s, 1, 7, styleWarn, "Rejected: "+snap.Rejected)
	}

	if snap.ModalOpen {
		top := 9
		fillRow(s, 1, w-1, top, styleModal)
		fillRow(s, 1, w-1, top+1, styleModal)
		fillRow(s, 1, w-1, top+2, styleModal)
		drawText(s, 3, top, styleModal, "Edit product (Enter saves, Esc cancels)")
		drawText(s, 3, top+1, styleModal, "Name: "+string(a.field)+"_")
	}

	drawText(s, 1, h-1, styleDim,
		"digits+Enter jump  Esc clear  ↑↓/Space product  ←→ image  e edit  Ctrl+Shift+P/S page  Ctrl+C quit")

	s.Show()
}
