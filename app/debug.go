package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/shirou/gopsutil/v3/process"
)

// DebugOverlay shows frame and process stats. Toggled with F12.
type DebugOverlay struct {
	active bool
	proc   *process.Process
}

// NewDebugOverlay creates an inactive overlay.
func NewDebugOverlay() *DebugOverlay {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		proc = nil
	}
	return &DebugOverlay{proc: proc}
}

// Toggle flips the overlay on or off.
func (d *DebugOverlay) Toggle() {
	d.active = !d.active
}

// Draw renders the stats block in the top-left area.
func (d *DebugOverlay) Draw(screen *ebiten.Image) {
	if !d.active {
		return
	}

	rss := uint64(0)
	if d.proc != nil {
		if mi, err := d.proc.MemoryInfo(); err == nil {
			rss = mi.RSS
		}
	}

	msg := fmt.Sprintf("FPS %.1f  TPS %.1f\nRSS %.1f MiB\nGoroutines %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		float64(rss)/(1024*1024), runtime.NumGoroutine())
	ebitenutil.DebugPrintAt(screen, msg, 16, 64)
}
