// Package registry implements the handler registry from spec §4.I: a
// multimap keyed by struct id, with lifetime-safe add/remove/find and the
// reader/writer-lock discipline spec §4.I and §5 require (dispatch takes a
// reader lock just long enough to snapshot matching handlers, so a handler
// may re-enter the registry). Modeled on the teacher's pkg/registry.Registry,
// whose RWMutex-guarded named-resource maps follow the same
// register-fails-if-exists / thread-safe-lookup shape, generalized here
// from named stores to a struct-id-keyed multimap of handlers.
package registry

import (
	"sync"

	"github.com/marmos91/csp/pkg/status"
	"github.com/marmos91/csp/pkg/wire"
)

// Handler is the server-side callback a registered entry wraps. Concrete
// signatures live in package server; Registry only needs identity and
// equality, so it stores handlers as `any` and compares by interface
// equality on unregister (both sides compare the exact value supplied to
// Register).
type Handler any

type entry struct {
	handler   Handler
	multicast bool
}

// Registry is the multimap from struct id to handler described in spec
// §3's "Handler registry entry" and §4.I.
type Registry struct {
	mu       sync.RWMutex
	handlers map[wire.StructID][]entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{handlers: make(map[wire.StructID][]entry)}
}

// Register adds handler for id. If multicast is false and any entry for id
// already exists, Register fails — spec §3: "Multiple entries may share a
// structId only when all of them declare multicast=true."
func (r *Registry) Register(id wire.StructID, multicast bool, handler Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.handlers[id]
	if len(existing) > 0 {
		if !multicast {
			return status.New(status.ErrAlreadyInited, "non-multicast handler already registered for struct id "+id.String())
		}
		for _, e := range existing {
			if !e.multicast {
				return status.New(status.ErrAlreadyInited, "struct id "+id.String()+" already has a non-multicast handler")
			}
		}
	}

	r.handlers[id] = append(existing, entry{handler: handler, multicast: multicast})
	return nil
}

// Unregister removes every entry for (id, handler). Idempotent: removing a
// handler that was never registered is not an error.
func (r *Registry) Unregister(id wire.StructID, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.handlers[id]
	if len(existing) == 0 {
		return
	}
	kept := existing[:0]
	for _, e := range existing {
		if e.handler != handler {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		delete(r.handlers, id)
		return
	}
	r.handlers[id] = kept
}

// FindAll returns a snapshot of every handler registered for id, empty if
// none. The returned slice is a copy; callers may invoke handlers from it
// after releasing the registry's lock, per spec §4.I's concurrency
// discipline.
func (r *Registry) FindAll(id wire.StructID) []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	existing := r.handlers[id]
	if len(existing) == 0 {
		return nil
	}
	out := make([]Handler, len(existing))
	for i, e := range existing {
		out[i] = e.handler
	}
	return out
}

// FindOne returns the single handler registered for id. It fails with
// ErrNoSuchHandler if none is registered, and with ErrMoreEntries if more
// than one multicast handler is registered (spec §4.I: "findOne(id) ->
// handler | {None, Many} — Many only occurs with multicast entries").
func (r *Registry) FindOne(id wire.StructID) (Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	existing := r.handlers[id]
	switch len(existing) {
	case 0:
		return nil, status.New(status.ErrNoSuchHandler, "no handler registered for struct id "+id.String())
	case 1:
		return existing[0].handler, nil
	default:
		return nil, status.New(status.ErrMoreEntries, "multiple multicast handlers registered for struct id "+id.String())
	}
}
