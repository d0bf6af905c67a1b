// Package tray provides the system tray controls using getlantern/systray.
package tray

import (
	"log"
	"sync"

	"github.com/getlantern/systray"
)

// HookControl is the subset of the hook manager the tray drives
type HookControl interface {
	Initialize() error
	Stop() error
	Installed() bool
}

// Tray shows hook status and lets the user pause, resume or quit
type Tray struct {
	hook    HookControl
	tooltip string
	onQuit  func()

	mu     sync.Mutex
	status *systray.MenuItem
	toggle *systray.MenuItem
	quitCh chan struct{}
}

// New creates a new system tray bound to a hook
func New(tooltip string, hook HookControl, onQuit func()) *Tray {
	return &Tray{
		hook:    hook,
		tooltip: tooltip,
		onQuit:  onQuit,
		quitCh:  make(chan struct{}),
	}
}

// Run starts the tray event loop (blocks)
func (t *Tray) Run() {
	systray.Run(t.setupMenu, t.onExit)
}

// Stop stops the tray
func (t *Tray) Stop() {
	systray.Quit()
}

func (t *Tray) onExit() {
	close(t.quitCh)
	if t.onQuit != nil {
		t.onQuit()
	}
}

// setupMenu is called when systray is ready
func (t *Tray) setupMenu() {
	systray.SetTitle("MouseHook")
	systray.SetTooltip(t.tooltip)
	systray.SetIcon(getIcon())

	t.mu.Lock()
	t.status = systray.AddMenuItem("", "Hook status")
	t.status.Disable()
	t.toggle = systray.AddMenuItem("", "Pause or resume the mouse hook")
	systray.AddSeparator()
	quit := systray.AddMenuItem("Quit", "Remove the hook and exit")
	t.mu.Unlock()

	t.refresh()

	go func() {
		for {
			select {
			case <-t.toggle.ClickedCh:
				t.Toggle()
			case <-quit.ClickedCh:
				t.Stop()
			case <-t.quitCh:
				return
			}
		}
	}()
}

// Toggle pauses an installed hook or resumes a paused one
func (t *Tray) Toggle() {
	if t.hook.Installed() {
		if err := t.hook.Stop(); err != nil {
			log.Printf("Tray: Failed to pause hook: %v", err)
		} else {
			log.Printf("Tray: Hook paused")
		}
	} else {
		if err := t.hook.Initialize(); err != nil {
			log.Printf("Tray: Failed to resume hook: %v", err)
		} else {
			log.Printf("Tray: Hook resumed")
		}
	}
	t.refresh()
}

func (t *Tray) refresh() {
	status, action := labels(t.hook.Installed())

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != nil {
		t.status.SetTitle(status)
	}
	if t.toggle != nil {
		t.toggle.SetTitle(action)
	}
}

func labels(installed bool) (status, action string) {
	if installed {
		return "Hook: active", "Pause hook"
	}
	return "Hook: paused", "Resume hook"
}
