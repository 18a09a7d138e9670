package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/roadview/pkg/render/term"
)

var (
	styleDefault    = tcell.StyleDefault
	styleMenu       = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleMenuSel    = tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite)
	styleTitle      = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleStatus     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgInfo    = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleMsgError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleMsgSuccess = tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorNavy)
	styleHelp       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleInput      = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleBorder     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

const maxDetailLines = 12

func (ed *Editor) draw() {
	ed.screen.Clear()
	w, h := ed.screen.Size()
	if h < 3 {
		return
	}

	ed.canvas = term.New(ed.screen, 0, 0, w, h-2)
	ed.canvas.Clear()
	ed.layer.Paint(ed.ctx, ed.canvas)

	if len(ed.detail) > 0 {
		ed.drawDetail(w, h)
	}
	switch ed.mode {
	case ModeQuery:
		ed.drawInputBox(w, h)
	case ModePopup:
		ed.drawPopup(w, h)
	case ModeHelp:
		ed.drawHelp(w, h)
	}
	ed.drawStatusBar(w, h)
}

func (ed *Editor) drawStatusBar(w, h int) {
	y := h - 1
	for x := 0; x < w; x++ {
		ed.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	m := ed.layer.Model()
	stats := ed.layer.LastStats()
	info := fmt.Sprintf("%s  %s  %d edges", m.Graph().Name(), m.Scale(), stats.Edges)
	ed.drawString(1, y, info, styleStatus)

	if mode := ed.modeString(); mode != "" {
		ed.drawString(w/2-len(mode)/2, y, mode, styleStatus)
	}

	if ed.message != "" {
		style := styleMsgInfo
		switch ed.messageType {
		case MsgError:
			style = styleMsgError
		case MsgSuccess:
			style = styleMsgSuccess
		}
		msg := truncate(ed.message, w/2-2)
		ed.drawString(w-len([]rune(msg))-2, y, msg, style)
	}

	y = h - 2
	for x := 0; x < w; x++ {
		ed.screen.SetContent(x, y, ' ', nil, styleDefault)
	}
	ed.drawString(1, y, truncate(ed.helpString(), w-2), styleHelp)
}

func (ed *Editor) drawInputBox(w, h int) {
	boxW := min(60, w)
	boxX := (w - boxW) / 2
	boxY := h - 6
	if boxY < 0 {
		boxY = 0
	}
	ed.drawBox(boxX, boxY, boxW, 3, styleInput)
	prompt := "query: "
	ed.drawString(boxX+2, boxY+1, prompt, styleInput)
	text := []rune(ed.input + "_")
	if room := boxW - 4 - len(prompt); len(text) > room && room > 0 {
		text = text[len(text)-room:]
	}
	ed.drawString(boxX+2+len(prompt), boxY+1, string(text), styleInput)
}

// popupRect returns where the popup is drawn, kept on screen.
func (ed *Editor) popupRect(w, h int) (x, y, bw, bh int) {
	bw = 4
	for _, it := range ed.popup {
		bw = max(bw, len([]rune(it.Label))+4)
	}
	bh = len(ed.popup) + 2
	x, y = ed.popupX, ed.popupY
	if x+bw > w {
		x = max(0, w-bw)
	}
	if y+bh > h-2 {
		y = max(0, h-2-bh)
	}
	return x, y, bw, bh
}

func (ed *Editor) drawPopup(w, h int) {
	x, y, bw, bh := ed.popupRect(w, h)
	ed.drawBox(x, y, bw, bh, styleMenu)
	for i, it := range ed.popup {
		style := styleMenu
		if i == ed.popupSel {
			style = styleMenuSel
		}
		ed.drawString(x+1, y+1+i, fmt.Sprintf(" %-*s", bw-3, it.Label), style)
	}
}

// popupItemAt maps a screen cell to a popup entry.
func (ed *Editor) popupItemAt(cx, cy int) (int, bool) {
	w, h := ed.screen.Size()
	x, y, bw, _ := ed.popupRect(w, h)
	i := cy - y - 1
	if cx <= x || cx >= x+bw-1 || i < 0 || i >= len(ed.popup) {
		return 0, false
	}
	return i, true
}

func (ed *Editor) drawDetail(w, h int) {
	lines := ed.detail
	if len(lines) > maxDetailLines {
		lines = lines[:maxDetailLines]
	}
	bw := 10
	for _, l := range lines {
		bw = max(bw, len([]rune(l))+4)
	}
	bw = min(bw, w)
	bh := len(lines) + 2
	x := w - bw
	y := max(0, h-2-bh)
	ed.drawBox(x, y, bw, bh, styleDefault)
	for i, l := range lines {
		ed.drawString(x+2, y+1+i, truncate(l, bw-4), styleDefault)
	}
}

func (ed *Editor) drawHelp(w, h int) {
	lines := []string{
		"click          select; click again to cycle",
		"right click    context menu",
		"n / p          next / previous under cursor",
		"/              query (type 'help' for syntax)",
		"arrows         pan",
		"+ / -          zoom in / out",
		"r              show whole graph",
		"d              toggle debug overlay",
		"c              clear highlights",
		"m, Enter       menu at centre",
		"Esc            clear selection",
		"q              quit",
	}
	bw := min(52, w)
	bh := len(lines) + 4
	x, y := (w-bw)/2, max(0, (h-bh)/2)
	ed.drawBox(x, y, bw, bh, styleDefault)
	ed.drawString(x+2, y+1, "roadedit "+version, styleTitle)
	for i, l := range lines {
		ed.drawString(x+2, y+3+i, truncate(l, bw-4), styleDefault)
	}
}

func (ed *Editor) drawBox(x, y, w, h int, style tcell.Style) {
	ed.screen.SetContent(x, y, '┌', nil, styleBorder)
	ed.screen.SetContent(x+w-1, y, '┐', nil, styleBorder)
	ed.screen.SetContent(x, y+h-1, '└', nil, styleBorder)
	ed.screen.SetContent(x+w-1, y+h-1, '┘', nil, styleBorder)
	for i := x + 1; i < x+w-1; i++ {
		ed.screen.SetContent(i, y, '─', nil, styleBorder)
		ed.screen.SetContent(i, y+h-1, '─', nil, styleBorder)
	}
	for i := y + 1; i < y+h-1; i++ {
		ed.screen.SetContent(x, i, '│', nil, styleBorder)
		ed.screen.SetContent(x+w-1, i, '│', nil, styleBorder)
	}
	for row := y + 1; row < y+h-1; row++ {
		for col := x + 1; col < x+w-1; col++ {
			ed.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

func (ed *Editor) drawString(x, y int, s string, style tcell.Style) {
	i := 0
	for _, r := range s {
		ed.screen.SetContent(x+i, y, r, nil, style)
		i++
	}
}

func (ed *Editor) modeString() string {
	switch ed.mode {
	case ModeQuery:
		return "QUERY"
	case ModePopup:
		return "MENU"
	case ModeHelp:
		return "HELP"
	}
	if ed.layer.Model().Debug() {
		return "DEBUG"
	}
	return ""
}

func (ed *Editor) helpString() string {
	switch ed.mode {
	case ModeQuery:
		return "Type query  Enter:Run  ↑↓:History  Esc:Cancel"
	case ModePopup:
		return "↑↓:Select  Enter:Run  Esc:Close"
	case ModeHelp:
		return "Any key:Close"
	default:
		return "Click:Select  n/p:Cycle  /:Query  Arrows:Pan  +/-:Zoom  r:Reset  ?:Help  q:Quit"
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 {
		return ""
	}
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
