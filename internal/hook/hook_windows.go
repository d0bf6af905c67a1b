//go:build windows

package hook

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procGetMessage          = user32.NewProc("GetMessageW")
	procPeekMessage         = user32.NewProc("PeekMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessage     = user32.NewProc("DispatchMessageW")
	procPostThreadMessage   = user32.NewProc("PostThreadMessageW")
	kernel32                = windows.NewLazySystemDLL("kernel32.dll")
	procGetModuleHandle     = kernel32.NewProc("GetModuleHandleW")
	procGetCurrentThread    = kernel32.NewProc("GetCurrentThread")
	procSetThreadPriority   = kernel32.NewProc("SetThreadPriority")
)

const (
	WM_QUIT     = 0x0012
	WM_USER     = 0x0400
	PM_NOREMOVE = 0x0000

	THREAD_PRIORITY_ABOVE_NORMAL = 1
)

type MSG struct {
	Hwnd    syscall.Handle
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      POINT
}

type winPlatform struct {
	once sync.Once
	cb   uintptr
	proc hookProc
}

func newPlatform() platform {
	return &winPlatform{}
}

func (p *winPlatform) prepareThread() (uint32, error) {
	thread, _, _ := procGetCurrentThread.Call()
	if ret, _, err := procSetThreadPriority.Call(thread, THREAD_PRIORITY_ABOVE_NORMAL); ret == 0 {
		log.Printf("MouseHook: SetThreadPriority failed: %v", err)
	}

	// PostThreadMessage only reaches threads that own a message queue.
	var msg MSG
	procPeekMessage.Call(uintptr(unsafe.Pointer(&msg)), 0, WM_USER, WM_USER, PM_NOREMOVE)

	return windows.GetCurrentThreadId(), nil
}

func (p *winPlatform) moduleHandle() (uintptr, error) {
	hMod, _, err := procGetModuleHandle.Call(0)
	if hMod == 0 {
		return 0, lastError(err)
	}
	return hMod, nil
}

func (p *winPlatform) install(proc hookProc, module uintptr) (Handle, error) {
	p.proc = proc
	// Callback slots are never released, so allocate one per platform.
	p.once.Do(func() {
		p.cb = syscall.NewCallback(func(nCode int32, wParam uintptr, lParam uintptr) uintptr {
			return p.proc(nCode, wParam, lParam)
		})
	})

	h, _, err := procSetWindowsHookEx.Call(
		WH_MOUSE_LL,
		p.cb,
		module,
		0, // dwThreadId (0 = all threads)
	)
	if h == 0 {
		return 0, lastError(err)
	}
	return Handle(h), nil
}

func (p *winPlatform) uninstall(h Handle) error {
	ret, _, err := procUnhookWindowsHookEx.Call(uintptr(h))
	if ret == 0 {
		return lastError(err)
	}
	return nil
}

func (p *winPlatform) callNext(h Handle, code int32, wParam, lParam uintptr) uintptr {
	ret, _, _ := procCallNextHookEx.Call(uintptr(h), uintptr(code), wParam, lParam)
	return ret
}

func (p *winPlatform) hookStruct(lParam uintptr) *MSLLHOOKSTRUCT {
	if lParam == 0 {
		return nil
	}
	return (*MSLLHOOKSTRUCT)(unsafe.Pointer(lParam))
}

func (p *winPlatform) pump() error {
	var msg MSG
	for {
		ret, _, err := procGetMessage.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		switch int32(ret) {
		case 0:
			return nil
		case -1:
			return fmt.Errorf("GetMessage: %w", lastError(err))
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
		procDispatchMessage.Call(uintptr(unsafe.Pointer(&msg)))
	}
}

func (p *winPlatform) quit(threadID uint32) error {
	ret, _, err := procPostThreadMessage.Call(uintptr(threadID), WM_QUIT, 0, 0)
	if ret == 0 {
		return fmt.Errorf("PostThreadMessage: %w", lastError(err))
	}
	return nil
}

// lastError normalizes the error returned by LazyProc.Call, which is never nil.
func lastError(err error) error {
	var errno syscall.Errno
	if errors.As(err, &errno) && errno == 0 {
		return syscall.EINVAL
	}
	return err
}
