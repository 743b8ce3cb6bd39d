// Package inspector is an optional debug GUI window that subscribes to
// the same telemetry a websocket client would receive and renders it as
// register/flag labels, with a button to copy the accumulated serial log
// to the system clipboard.
package inspector

import (
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"golang.design/x/clipboard"

	"github.com/nkato/goboy/internal/telemetry"
)

// SerialLog accumulates bytes published over serial for later inspection;
// internal/serial.Sink is satisfied by *SerialLog directly.
type SerialLog struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (l *SerialLog) Write(b byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf.WriteByte(b)
}

func (l *SerialLog) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.String()
}

// Window is the inspector's single debug window: a live register/flag
// dump plus a copy-serial-log action.
type Window struct {
	win fyne.Window
	log *SerialLog

	pc, sp, af, bc, de, hl, flags, ppu *widget.Label
}

// New builds an inspector window under a. log may be nil if serial
// logging isn't wired.
func New(a fyne.App, log *SerialLog) *Window {
	w := &Window{win: a.NewWindow("goboy inspector"), log: log}

	w.pc = widget.NewLabel("PC: ----")
	w.sp = widget.NewLabel("SP: ----")
	w.af = widget.NewLabel("AF: ----")
	w.bc = widget.NewLabel("BC: ----")
	w.de = widget.NewLabel("DE: ----")
	w.hl = widget.NewLabel("HL: ----")
	w.flags = widget.NewLabel("flags: ----")
	w.ppu = widget.NewLabel("ppu: ----")

	copyBtn := widget.NewButton("Copy serial log", func() { w.copySerialLog() })

	w.win.SetContent(container.NewVBox(
		w.pc, w.sp, w.af, w.bc, w.de, w.hl, w.flags, w.ppu, copyBtn,
	))
	w.win.Resize(fyne.NewSize(240, 260))

	return w
}

func (w *Window) copySerialLog() {
	if w.log == nil {
		return
	}
	if err := clipboard.Init(); err != nil {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(w.log.String()))
}

// Update repaints the window with the latest snapshot. Safe to call from
// the scheduler's OnFrame hook; fyne marshals widget updates onto its own
// goroutine internally.
func (w *Window) Update(snap telemetry.Snapshot) {
	w.pc.SetText(fmt.Sprintf("PC: %04X", snap.PC))
	w.sp.SetText(fmt.Sprintf("SP: %04X", snap.SP))
	w.af.SetText(fmt.Sprintf("AF: %02X%02X", snap.A, snap.F))
	w.bc.SetText(fmt.Sprintf("BC: %02X%02X", snap.B, snap.C))
	w.de.SetText(fmt.Sprintf("DE: %02X%02X", snap.D, snap.E))
	w.hl.SetText(fmt.Sprintf("HL: %02X%02X", snap.H, snap.L))

	var flags strings.Builder
	for _, f := range []struct {
		bit  uint8
		name string
	}{{0x80, "Z"}, {0x40, "N"}, {0x20, "H"}, {0x10, "C"}} {
		if snap.F&f.bit != 0 {
			flags.WriteString(f.name)
		} else {
			flags.WriteString("-")
		}
	}
	w.flags.SetText("flags: " + flags.String() + fmt.Sprintf("  IME=%v IE=%02X IF=%02X", snap.IME, snap.IE, snap.IF))
	w.ppu.SetText(fmt.Sprintf("ppu: mode=%d ly=%d frame=%d", snap.PPUMode, snap.LY, snap.FrameCount))
}

// Show displays the window without blocking; the caller drives the fyne
// app's own event loop separately (app.Run).
func (w *Window) Show() { w.win.Show() }
