//go:build !windows

package hook

// Stub implementation for non-Windows platforms

type stubPlatform struct{}

func newPlatform() platform {
	return stubPlatform{}
}

func (stubPlatform) prepareThread() (uint32, error) {
	return 0, ErrUnsupportedPlatform
}

func (stubPlatform) moduleHandle() (uintptr, error) {
	return 0, ErrUnsupportedPlatform
}

func (stubPlatform) install(hookProc, uintptr) (Handle, error) {
	return 0, ErrUnsupportedPlatform
}

func (stubPlatform) uninstall(Handle) error {
	return nil
}

func (stubPlatform) callNext(Handle, int32, uintptr, uintptr) uintptr {
	return 0
}

func (stubPlatform) hookStruct(uintptr) *MSLLHOOKSTRUCT {
	return nil
}

func (stubPlatform) pump() error {
	return ErrUnsupportedPlatform
}

func (stubPlatform) quit(uint32) error {
	return nil
}
