//go:build !debug

package arena

type debugState struct{}

func newDebugState() *debugState { return nil }

func (d *debugState) recordAcquire(any) {}

func (d *debugState) recordRelease(any) {}

func (d *debugState) activeStacks() []string { return nil }
