package arena

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

var (
	// ErrNotRegistered indicates the requested arena has not been registered.
	ErrNotRegistered = errors.New("arena registry: arena not registered")
	// ErrRegistryClosed indicates the registry is shutting down and cannot service requests.
	ErrRegistryClosed = errors.New("arena registry: shutdown in progress")
)

const shutdownPollInterval = 10 * time.Millisecond

// Source is the type-erased view of an Arena[T] held by a Registry.
type Source interface {
	Name() string
	Len() int
	ReduceTo(int)
	Stats() Stats

	activeStacks() []string
}

// Registry coordinates named arenas, providing lookup and graceful shutdown
// that waits for outstanding leases to drain before dropping idle storage.
type Registry struct {
	mu           sync.RWMutex
	arenas       map[string]Source
	shutdownCh   chan struct{}
	shutdownOnce sync.Once
}

// NewRegistry constructs an empty registry ready for arena registration.
func NewRegistry() *Registry {
	r := new(Registry)
	r.arenas = make(map[string]Source)
	r.shutdownCh = make(chan struct{})
	return r
}

// Register adds the arena under its diagnostic name.
func (r *Registry) Register(src Source) error {
	if src == nil {
		return fmt.Errorf("arena registry: nil source")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	select {
	case <-r.shutdownCh:
		return ErrRegistryClosed
	default:
	}

	name := src.Name()
	if _, exists := r.arenas[name]; exists {
		return fmt.Errorf("arena registry: arena %s already registered", name)
	}
	r.arenas[name] = src
	return nil
}

// Lookup returns the registered arena with the given name.
func (r *Registry) Lookup(name string) (Source, error) {
	r.mu.RLock()
	src, ok := r.arenas[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	return src, nil
}

// Live reports the total number of outstanding leases across all registered
// arenas.
func (r *Registry) Live() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total int64
	for _, src := range r.arenas {
		total += src.Stats().Live
	}
	return total
}

// Shutdown waits for all outstanding leases to be released or taken, then
// drops every arena's idle storage. It cancels after the provided context
// (defaulting to 5 seconds) and logs leak candidates with acquisition stacks
// when the debug build tag is on.
func (r *Registry) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var cancel context.CancelFunc
	if _, ok := ctx.Deadline(); !ok {
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
	}
	if cancel != nil {
		defer cancel()
	}

	r.shutdownOnce.Do(func() {
		close(r.shutdownCh)
	})

	ticker := time.NewTicker(shutdownPollInterval)
	defer ticker.Stop()
	for r.Live() > 0 {
		select {
		case <-ctx.Done():
			remaining := r.Live()
			r.logOutstanding(remaining)
			return fmt.Errorf("shutdown timeout: %d leases outstanding", remaining)
		case <-ticker.C:
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, src := range r.arenas {
		src.ReduceTo(0)
	}
	return nil
}

func (r *Registry) logOutstanding(remaining int64) {
	if remaining <= 0 {
		return
	}
	log.Printf("arena registry: shutdown timed out with %d leases outstanding", remaining)
	r.mu.RLock()
	sources := make([]Source, 0, len(r.arenas))
	for _, src := range r.arenas {
		sources = append(sources, src)
	}
	r.mu.RUnlock()
	for _, src := range sources {
		for _, stack := range src.activeStacks() {
			log.Printf("arena registry: leak candidate in arena %s\n%s", src.Name(), stack)
		}
	}
}
