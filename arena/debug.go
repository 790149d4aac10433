//go:build debug

package arena

import (
	"reflect"
	"runtime/debug"
	"sync"
)

// debugState tracks acquisition stacks for outstanding leases so registry
// shutdown can name leak candidates. Compiled in only under the debug tag.
type debugState struct {
	mu     sync.Mutex
	stacks map[uintptr]string
}

func newDebugState() *debugState {
	return &debugState{stacks: make(map[uintptr]string)}
}

func (d *debugState) recordAcquire(lease any) {
	if d == nil {
		return
	}
	key := leaseKey(lease)
	if key == 0 {
		return
	}
	stack := string(debug.Stack())
	d.mu.Lock()
	d.stacks[key] = stack
	d.mu.Unlock()
}

func (d *debugState) recordRelease(lease any) {
	if d == nil {
		return
	}
	key := leaseKey(lease)
	if key == 0 {
		return
	}
	d.mu.Lock()
	delete(d.stacks, key)
	d.mu.Unlock()
}

func (d *debugState) activeStacks() []string {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.stacks) == 0 {
		return nil
	}
	out := make([]string, 0, len(d.stacks))
	for _, stack := range d.stacks {
		out = append(out, stack)
	}
	return out
}

func leaseKey(lease any) uintptr {
	v := reflect.ValueOf(lease)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return 0
	}
	return v.Pointer()
}
