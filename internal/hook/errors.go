package hook

import "errors"

var (
	// ErrUnsupportedPlatform is returned when low-level hooks are unavailable on this OS
	ErrUnsupportedPlatform = errors.New("low-level mouse hook not supported on this platform")

	// ErrAlreadyRunning is returned by Initialize while a hook thread is active
	ErrAlreadyRunning = errors.New("mouse hook already running")

	// ErrModuleHandle is returned when the process module handle cannot be resolved
	ErrModuleHandle = errors.New("failed to resolve module handle")

	// ErrInstallFailed is returned when the OS refuses to install the hook
	ErrInstallFailed = errors.New("failed to install mouse hook")

	// ErrListenerPanic wraps a panic recovered from a listener
	ErrListenerPanic = errors.New("mouse hook listener panicked")
)
