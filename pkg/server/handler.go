package server

import (
	"context"

	cspctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/wire"
)

// HandlerFunc is the typed callback spec §4.J step 8 describes: it
// receives the decoded request context and a positioned Source, and
// returns an encoded response. clientAddr identifies the caller for
// logging/ACLs; d.AddedPointers is drained by the handler if it takes
// ownership of any pointer targets the deserializer allocated.
//
// outputID is the struct id of the response type — the server does not
// know it statically, since one struct id can route to handlers that
// reply with different types.
type HandlerFunc func(ctx context.Context, d *cspctx.Data, src *wire.Source, clientAddr string) (outputID wire.StructID, outputBody []byte, err error)

// Entry is one registered handler, carrying the metadata the dispatcher
// needs beyond the callback itself: the minimum interface version this
// handler accepts (spec §4.F: "a received interfaceVersion is acceptable
// iff minimumHandlerVersion <= received <= currentVersion") and whether it
// prefers heap or bump-allocator temporaries while decoding (spec §5's
// "forTempUseHeap", a QoI decision with no wire visibility).
type Entry struct {
	MinimumVersion uint32
	CurrentVersion uint32
	ForTempUseHeap bool
	Fn             HandlerFunc
}
