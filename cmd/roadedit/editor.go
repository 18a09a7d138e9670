package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/roadview/pkg/config"
	"github.com/ha1tch/roadview/pkg/geo"
	"github.com/ha1tch/roadview/pkg/render/term"
	"github.com/ha1tch/roadview/pkg/roadgraph"
	"github.com/ha1tch/roadview/pkg/search"
	"github.com/ha1tch/roadview/pkg/viewer"
)

// Mode is the current input mode.
type Mode int

const (
	ModeView  Mode = iota
	ModeQuery      // typing a query
	ModePopup      // context menu open
	ModeHelp       // help overlay
)

// MessageType for status messages
type MessageType int

const (
	MsgInfo MessageType = iota
	MsgError
	MsgSuccess
)

// panStep is the fraction of the canvas moved by one arrow key.
const panStep = 0.25

// Editor hosts one layer on a tcell screen.
type Editor struct {
	ctx    context.Context
	screen tcell.Screen
	layer  *viewer.Layer
	canvas *term.Canvas
	logger *slog.Logger
	mode   Mode

	message     string
	messageType MessageType
	detail      []string // text of the last query result

	input   string
	history []string
	histPos int

	popup    []viewer.PopupItem
	popupSel int
	popupX   int
	popupY   int

	buttons tcell.ButtonMask // pressed on the previous mouse event
}

// NewEditor builds a layer for g whose repaint requests wake the event loop.
func NewEditor(ctx context.Context, screen tcell.Screen, g roadgraph.Graph, cfg *config.Config, browser search.Browser, logger *slog.Logger) (*Editor, error) {
	ed := &Editor{ctx: ctx, screen: screen, logger: logger}
	post := func() { screen.PostEvent(tcell.NewEventInterrupt(nil)) }
	l, err := viewer.Open(g, cfg, browser, post, version, logger)
	if err != nil {
		return nil, err
	}
	ed.layer = l
	ed.showMessage(fmt.Sprintf("%s: %d edges", g.Name(), g.EdgeCount()), MsgInfo)
	return ed, nil
}

func (ed *Editor) run() {
	for {
		ed.draw()
		ed.screen.Show()

		switch ev := ed.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			ed.screen.Sync()
		case *tcell.EventKey:
			if ed.handleKey(ev) {
				return
			}
		case *tcell.EventMouse:
			ed.handleMouse(ev)
		case *tcell.EventInterrupt:
			// repaint requested
		}
	}
}

func (ed *Editor) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	switch ed.mode {
	case ModeQuery:
		ed.handleQueryKey(ev)
	case ModePopup:
		ed.handlePopupKey(ev)
	case ModeHelp:
		ed.mode = ModeView
	default:
		return ed.handleViewKey(ev)
	}
	return false
}

func (ed *Editor) handleViewKey(ev *tcell.EventKey) bool {
	m := ed.layer.Model()
	size := ed.canvasSize()
	switch ev.Key() {
	case tcell.KeyUp:
		m.Pan(0, -size.Y*panStep)
	case tcell.KeyDown:
		m.Pan(0, size.Y*panStep)
	case tcell.KeyLeft:
		m.Pan(-size.X*panStep, 0)
	case tcell.KeyRight:
		m.Pan(size.X*panStep, 0)
	case tcell.KeyEscape:
		ed.detail = nil
		m.Selection().Clear()
	case tcell.KeyEnter:
		ed.openPopup(ed.screenCenter())
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case '/', ':':
			ed.mode = ModeQuery
			ed.input = ""
			ed.histPos = len(ed.history)
		case 'n':
			ed.step(ed.layer.Next)
		case 'p':
			ed.step(ed.layer.Previous)
		case '+', '=':
			m.ZoomBy(2)
		case '-', '_':
			m.ZoomBy(0.5)
		case 'r':
			m.Reset()
		case 'd':
			ed.runQuery("debug")
		case 'c':
			ed.runQuery("clear")
		case 'm':
			ed.openPopup(ed.screenCenter())
		case '?', 'h':
			ed.mode = ModeHelp
		}
	}
	return false
}

func (ed *Editor) handleQueryKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		ed.mode = ModeView
	case tcell.KeyEnter:
		ed.mode = ModeView
		text := strings.TrimSpace(ed.input)
		ed.input = ""
		if text == "" {
			return
		}
		if n := len(ed.history); n == 0 || ed.history[n-1] != text {
			ed.history = append(ed.history, text)
		}
		ed.runQuery(text)
	case tcell.KeyUp:
		if ed.histPos > 0 {
			ed.histPos--
			ed.input = ed.history[ed.histPos]
		}
	case tcell.KeyDown:
		if ed.histPos < len(ed.history)-1 {
			ed.histPos++
			ed.input = ed.history[ed.histPos]
		} else {
			ed.histPos = len(ed.history)
			ed.input = ""
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if r := []rune(ed.input); len(r) > 0 {
			ed.input = string(r[:len(r)-1])
		}
	case tcell.KeyRune:
		ed.input += string(ev.Rune())
	}
}

func (ed *Editor) handlePopupKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		ed.closePopup()
	case tcell.KeyUp:
		if ed.popupSel > 0 {
			ed.popupSel--
		}
	case tcell.KeyDown:
		if ed.popupSel < len(ed.popup)-1 {
			ed.popupSel++
		}
	case tcell.KeyEnter:
		ed.runPopupItem(ed.popupSel)
	}
}

func (ed *Editor) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons &^ ed.buttons
	ed.buttons = buttons
	x, y := ev.Position()

	if ed.mode == ModePopup {
		if pressed&tcell.Button1 != 0 {
			if i, ok := ed.popupItemAt(x, y); ok {
				ed.runPopupItem(i)
			} else {
				ed.closePopup()
			}
		}
		return
	}
	if ed.canvas == nil {
		return
	}

	switch {
	case buttons&tcell.WheelUp != 0:
		ed.layer.Model().ZoomBy(1.25)
	case buttons&tcell.WheelDown != 0:
		ed.layer.Model().ZoomBy(0.8)
	case pressed&tcell.Button1 != 0:
		ed.click(x, y)
	case pressed&tcell.Button2 != 0:
		ed.openPopup(x, y)
	}
}

// click selects the entity under a screen cell.
func (ed *Editor) click(x, y int) {
	e := ed.layer.Click(ed.canvas.Pixel(x, y))
	if e == nil {
		ed.showMessage("nothing here", MsgInfo)
		return
	}
	ed.showMessage(describe(e), MsgInfo)
}

func (ed *Editor) step(move func() (roadgraph.Entity, bool)) {
	e, ok := move()
	if !ok {
		ed.showMessage("no other entity here", MsgInfo)
		return
	}
	ed.showMessage(describe(e), MsgInfo)
}

func (ed *Editor) runQuery(text string) {
	ed.showFeedback(ed.layer.Query(ed.ctx, text))
}

func (ed *Editor) openPopup(x, y int) {
	if ed.canvas == nil {
		return
	}
	ed.popup = ed.layer.Popup(ed.canvas.Pixel(x, y))
	ed.popupSel = 0
	ed.popupX, ed.popupY = x, y
	ed.mode = ModePopup
}

func (ed *Editor) closePopup() {
	ed.popup = nil
	ed.mode = ModeView
}

func (ed *Editor) runPopupItem(i int) {
	if i < 0 || i >= len(ed.popup) {
		return
	}
	item := ed.popup[i]
	ed.closePopup()
	ed.logger.Debug("popup", "item", item.Label)
	ed.showFeedback(item.Action(ed.ctx))
}

func (ed *Editor) showFeedback(fb search.UserFeedback) {
	typ := MsgSuccess
	if strings.HasPrefix(fb.Status(), "couldn't find") || strings.HasPrefix(fb.Status(), "no ") {
		typ = MsgError
	}
	ed.showMessage(fb.Status(), typ)
	ed.detail = nil
	if text := strings.TrimRight(fb.Text(), "\n"); text != "" && text != fb.Status() {
		ed.detail = strings.Split(text, "\n")
	}
}

func (ed *Editor) showMessage(msg string, msgType MessageType) {
	ed.message = msg
	ed.messageType = msgType
}

func (ed *Editor) canvasSize() geo.Point {
	if ed.canvas == nil {
		return geo.Point{}
	}
	return ed.canvas.Size()
}

func (ed *Editor) screenCenter() (int, int) {
	w, h := ed.screen.Size()
	return w / 2, (h - 2) / 2
}

func describe(e roadgraph.Entity) string {
	if s, ok := e.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%s %d", e.Kind(), e.Identity())
}
