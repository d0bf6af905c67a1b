package hook

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

const (
	quitAttempts = 3
	quitBackoff  = 10 * time.Millisecond
)

func defaultErrorHandler(err error) {
	log.Printf("MouseHook: %v", err)
}

// Handle is the OS-assigned identifier of an installed hook.
type Handle uintptr

// State is the lifecycle state of a Manager.
type State int32

const (
	Uninstalled State = iota
	Installing
	Installed
	Uninstalling
)

func (s State) String() string {
	switch s {
	case Uninstalled:
		return "uninstalled"
	case Installing:
		return "installing"
	case Installed:
		return "installed"
	case Uninstalling:
		return "uninstalling"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

type hookProc func(code int32, wParam, lParam uintptr) uintptr

// platform is the OS boundary. Every method except quit and uninstall is
// called on the locked pump thread.
type platform interface {
	// prepareThread readies the current thread for hooking and returns its id.
	prepareThread() (uint32, error)
	moduleHandle() (uintptr, error)
	install(proc hookProc, module uintptr) (Handle, error)
	uninstall(h Handle) error
	callNext(h Handle, code int32, wParam, lParam uintptr) uintptr
	hookStruct(lParam uintptr) *MSLLHOOKSTRUCT
	// pump runs the thread's message loop until quit is posted.
	pump() error
	quit(threadID uint32) error
}

// Manager owns a dedicated hook thread, the hook handle it installs and the
// set of listeners events are delivered to.
type Manager struct {
	mu       sync.Mutex // serializes Initialize and Stop
	plat     platform
	state    atomic.Int32
	handle   atomic.Uintptr
	threadID uint32
	done     chan struct{}
	gen      atomic.Uint64 // bumped per Initialize and when a thread is detached

	lmu       sync.RWMutex
	listeners map[uint64]Listener
	nextID    uint64
	onError   func(error)
}

// NewManager creates a mouse hook manager for the current platform
func NewManager() *Manager {
	return newManager(newPlatform())
}

func newManager(p platform) *Manager {
	return &Manager{
		plat:      p,
		listeners: make(map[uint64]Listener),
		onError:   defaultErrorHandler,
	}
}

// State returns the current lifecycle state
func (m *Manager) State() State {
	return State(m.state.Load())
}

// Installed reports whether a hook handle is currently held
func (m *Manager) Installed() bool {
	return m.handle.Load() != 0
}

func (m *Manager) setState(s State) {
	m.state.Store(int32(s))
}

// Subscribe registers a listener and returns a function that removes it.
// Listeners run synchronously on the hook thread and must not call Stop.
func (m *Manager) Subscribe(l Listener) func() {
	m.lmu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = l
	m.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.lmu.Lock()
			delete(m.listeners, id)
			m.lmu.Unlock()
		})
	}
}

// SetErrorHandler sets where recovered listener panics are reported.
// A nil handler restores the default logger.
func (m *Manager) SetErrorHandler(fn func(error)) {
	if fn == nil {
		fn = defaultErrorHandler
	}
	m.lmu.Lock()
	m.onError = fn
	m.lmu.Unlock()
}

// Initialize starts the hook thread and blocks until the hook is installed.
// It returns ErrAlreadyRunning if the manager is not uninstalled.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.state.CompareAndSwap(int32(Uninstalled), int32(Installing)) {
		return ErrAlreadyRunning
	}

	ready := make(chan error, 1)
	done := make(chan struct{})
	m.done = done

	go m.hookThread(m.gen.Add(1), ready, done)

	if err := <-ready; err != nil {
		<-done
		return err
	}
	return nil
}

// Stop uninstalls the hook and shuts the hook thread down, waiting for it to
// exit. It is safe to call at any time and any number of times.
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.state.CompareAndSwap(int32(Installed), int32(Uninstalling)) {
		// Never started, or the loop is already tearing itself down.
		if m.done != nil {
			<-m.done
		}
		return nil
	}

	m.unhook()

	if err := m.postQuit(); err != nil {
		// The hook is already gone. Detach the unreachable thread so the
		// manager can be stopped or initialized again.
		log.Printf("MouseHook: failed to signal hook thread %d, detaching: %v", m.threadID, err)
		m.gen.Add(1)
		m.done = nil
		m.setState(Uninstalled)
		return fmt.Errorf("stop hook thread: %w", err)
	}

	<-m.done
	log.Printf("MouseHook: stopped")
	return nil
}

func (m *Manager) postQuit() error {
	var err error
	for i := 0; i < quitAttempts; i++ {
		if i > 0 {
			time.Sleep(quitBackoff)
		}
		if err = m.plat.quit(m.threadID); err == nil {
			return nil
		}
	}
	return err
}

// hookThread is the pump thread body. The hook must be installed and
// removed from the thread that runs the message loop.
func (m *Manager) hookThread(gen uint64, ready chan<- error, done chan<- struct{}) {
	defer close(done)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	defer func() {
		if m.gen.Load() == gen {
			m.setState(Uninstalled)
		}
	}()

	tid, err := m.plat.prepareThread()
	if err != nil {
		ready <- fmt.Errorf("prepare hook thread: %w", err)
		return
	}
	m.threadID = tid

	module, err := m.plat.moduleHandle()
	if err != nil {
		ready <- fmt.Errorf("%w: %w", ErrModuleHandle, err)
		return
	}

	h, err := m.plat.install(m.callback, module)
	if err != nil {
		log.Printf("MouseHook: SetWindowsHookEx failed: %v", err)
		ready <- fmt.Errorf("%w: %w", ErrInstallFailed, err)
		return
	}
	m.handle.Store(uintptr(h))
	defer m.unhookHandle(h)

	m.setState(Installed)
	log.Printf("MouseHook: installed (handle 0x%X, thread %d)", uintptr(h), tid)
	ready <- nil

	if err := m.plat.pump(); err != nil {
		log.Printf("MouseHook: message loop error: %v", err)
	}
	if m.gen.Load() == gen {
		m.state.CompareAndSwap(int32(Installed), int32(Uninstalling))
	}
}

// unhook removes the current hook at most once per install.
func (m *Manager) unhook() {
	h := Handle(m.handle.Swap(0))
	if h == 0 {
		return
	}
	m.uninstall(h)
}

// unhookHandle removes h only if it is still the current hook.
func (m *Manager) unhookHandle(h Handle) {
	if !m.handle.CompareAndSwap(uintptr(h), 0) {
		return
	}
	m.uninstall(h)
}

func (m *Manager) uninstall(h Handle) {
	if err := m.plat.uninstall(h); err != nil {
		log.Printf("MouseHook: UnhookWindowsHookEx failed: %v", err)
		return
	}
	log.Printf("MouseHook: uninstalled (handle 0x%X)", uintptr(h))
}

// callback is the hook procedure. It always forwards to the next hook.
func (m *Manager) callback(code int32, wParam, lParam uintptr) uintptr {
	h := Handle(m.handle.Load())
	if code >= 0 && h != 0 && m.State() == Installed {
		m.process(code, wParam, lParam)
	}
	return m.plat.callNext(h, code, wParam, lParam)
}

func (m *Manager) process(code int32, wParam, lParam uintptr) {
	defer func() {
		if r := recover(); r != nil {
			m.reportError(fmt.Errorf("decode hook payload: %v", r))
		}
	}()

	hs := m.plat.hookStruct(lParam)
	if hs == nil {
		return
	}
	m.dispatch(decodeEvent(code, wParam, lParam, hs))
}

func (m *Manager) dispatch(ev MouseEvent) {
	m.lmu.RLock()
	listeners := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}
	m.lmu.RUnlock()

	for _, l := range listeners {
		m.safeCall(l, ev)
	}
}

func (m *Manager) safeCall(l Listener, ev MouseEvent) {
	defer func() {
		if r := recover(); r != nil {
			m.reportError(fmt.Errorf("%w: %v", ErrListenerPanic, r))
		}
	}()
	l(ev)
}

func (m *Manager) reportError(err error) {
	m.lmu.RLock()
	fn := m.onError
	m.lmu.RUnlock()
	fn(err)
}
