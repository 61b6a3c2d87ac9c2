package server

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/marmos91/csp/internal/logger"
	cspctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/framing"
	"github.com/marmos91/csp/pkg/metrics"
	"github.com/marmos91/csp/pkg/registry"
	"github.com/marmos91/csp/pkg/settings"
	"github.com/marmos91/csp/pkg/status"
	"github.com/marmos91/csp/pkg/wire"
)

// Server dispatches decoded messages to registered handlers, implementing
// the nine-step algorithm of spec §4.J. It owns no transport; callers feed
// it whole messages (one per HandleMessage call) over whatever listener
// they run — cmd/cspd wraps it around a TCP accept loop.
type Server struct {
	Registry *registry.Registry
	Settings settings.Config
}

// New returns a Server dispatching through reg under cfg's negotiated
// policy.
func New(reg *registry.Registry, cfg settings.Config) *Server {
	return &Server{Registry: reg, Settings: cfg}
}

// HandleMessage runs the full spec §4.J dispatch algorithm over one
// encoded message and returns the encoded reply. A returned error means
// the message could not even be framed into a status reply (e.g. the
// common header itself was truncated); every other failure is reported
// to the peer as an encoded Status message, not as a Go error.
func (s *Server) HandleMessage(ctx context.Context, in []byte, clientAddr string) ([]byte, error) {
	timer := prometheus.NewTimer(metrics.DispatchDuration)
	defer timer.ObserveDuration()

	src := wire.NewSource(in)

	// Step 1: decode the common header and check the protocol version.
	common, err := framing.DecodeCommonHeader(src)
	if err != nil {
		return nil, fmt.Errorf("decode common header: %w", err)
	}

	policy := s.Settings.Policy()
	if !policy.SupportsProtocolVersion(common.ProtocolVersion) {
		logger.Warn("unsupported protocol version", "version", common.ProtocolVersion, "client", clientAddr)
		return s.statusReply(common, status.ErrNotSupportedProtocolVersion, &framing.ProtocolVersionMismatch{
			SupportedVersions: policy.SupportedProtocolVersions,
			MandatoryCommon:   policy.MandatoryCommonFlags,
		})
	}

	// Step 2: GetSettings short-circuits everything else (spec §4.J step
	// 2: "a GetSettings message never reaches the handler registry").
	if common.MessageType == cspctx.MessageGetSettings {
		return s.encodeSettingsReply(common)
	}

	// Step 3: common-flags compatibility.
	if ok, mismatch := policy.CheckCommonFlags(common.CommonFlags); !ok {
		logger.Warn("common flags mismatch", "flags", common.CommonFlags, "client", clientAddr)
		return s.statusReply(common, status.ErrNotCompatibleCommonFlagsSettings, mismatch)
	}

	if common.MessageType != cspctx.MessageData && common.MessageType != cspctx.MessageInOut {
		logger.Warn("unexpected message type at data stage", "type", common.MessageType, "client", clientAddr)
		return s.statusReply(common, status.ErrInvalidArgument, nil)
	}

	// Step 4: decode the data sub-header and build the context.
	d, err := framing.DecodeDataSubHeader(src, common)
	if err != nil {
		return nil, fmt.Errorf("decode data sub-header: %w", err)
	}

	if ok, mismatch := policy.CheckDataFlags(d.DataFlags, d.ID); !ok {
		logger.Warn("data flags mismatch", "id", d.ID, "client", clientAddr)
		return s.statusReply(common, status.ErrNotCompatibleDataFlagsSettings, mismatch)
	}

	rewindAt := src.Tell()

	// Step 5: handler lookup. Multicast ids fan out to every registered
	// handler; everything else is a single lookup.
	handlers := s.Registry.FindAll(d.ID)
	if len(handlers) == 0 {
		logger.Debug("no handler registered", "id", d.ID, "client", clientAddr)
		return s.statusReply(common, status.ErrNoSuchHandler, nil)
	}

	if len(handlers) == 1 {
		return s.invoke(ctx, common, d, handlers[0], src, rewindAt, clientAddr)
	}

	return s.invokeMulticast(ctx, common, d, handlers, src, rewindAt, clientAddr)
}

// invoke runs a single handler end to end: version check, dispatch,
// response framing.
func (s *Server) invoke(ctx context.Context, common cspctx.Common, d *cspctx.Data, h registry.Handler, src *wire.Source, rewindAt int, clientAddr string) ([]byte, error) {
	entry, ok := h.(*Entry)
	if !ok {
		logger.Error("registry entry is not a *server.Entry", "id", d.ID)
		return s.statusReply(common, status.ErrInternal, nil)
	}

	// Step 6: interface-version compatibility (spec §4.F: "acceptable iff
	// minimumHandlerVersion <= received <= currentVersion").
	if d.InterfaceVersion < entry.MinimumVersion || d.InterfaceVersion > entry.CurrentVersion {
		logger.Warn("interface version mismatch", "id", d.ID, "received", d.InterfaceVersion, "client", clientAddr)
		return s.statusReply(common, status.ErrNotSupportedInterfaceVersion, &framing.InterfaceVersionMismatch{
			ID:               d.ID,
			MinSupported:     entry.MinimumVersion,
			CurrentSupported: entry.CurrentVersion,
		})
	}
	d.VersionsMismatched = d.InterfaceVersion != entry.CurrentVersion

	// Step 7: invoke, honoring the handler's temp-allocation preference.
	d.AuxUsingHeapAllocation = entry.ForTempUseHeap
	call := src.Clone(rewindAt)
	outputID, outputBody, err := entry.Fn(ctx, d, call, clientAddr)
	if err != nil {
		logger.Warn("handler failed", "id", d.ID, "code", status.CodeOf(err), "client", clientAddr)
		return s.statusReply(common, status.CodeOf(err), nil)
	}

	// Step 8/9: encode a Data reply sharing protocol version, common
	// flags, and the handler's declared output interface version.
	return s.dataReply(common, outputID, entry.CurrentVersion, d.DataFlags, outputBody)
}

// invokeMulticast fans out to every registered handler concurrently via
// errgroup (spec §4.J step 8's "invoke: for multicast ids, every
// registered handler runs"). Each handler gets its own cursor over the
// request body so handlers cannot observe each other's reads. The first
// handler to fail determines the status reply; if all succeed, the
// first handler's reply is what is sent back to the caller, since a
// one-request-one-reply transport cannot carry N replies for one
// request.
func (s *Server) invokeMulticast(ctx context.Context, common cspctx.Common, d *cspctx.Data, handlers []registry.Handler, src *wire.Source, rewindAt int, clientAddr string) ([]byte, error) {
	type result struct {
		outputID   wire.StructID
		outputBody []byte
		version    uint32
	}

	results := make([]*result, len(handlers))
	g, gctx := errgroup.WithContext(ctx)

	for i, h := range handlers {
		i, h := i, h
		g.Go(func() error {
			entry, ok := h.(*Entry)
			if !ok {
				return status.New(status.ErrInternal, "registry entry is not a *server.Entry")
			}
			if d.InterfaceVersion < entry.MinimumVersion || d.InterfaceVersion > entry.CurrentVersion {
				return status.NewWithBody(status.ErrNotSupportedInterfaceVersion, "interface version mismatch", &framing.InterfaceVersionMismatch{
					ID:               d.ID,
					MinSupported:     entry.MinimumVersion,
					CurrentSupported: entry.CurrentVersion,
				})
			}

			local := *d
			local.VersionsMismatched = d.InterfaceVersion != entry.CurrentVersion
			local.AuxUsingHeapAllocation = entry.ForTempUseHeap

			call := src.Clone(rewindAt)
			outputID, outputBody, err := entry.Fn(gctx, &local, call, clientAddr)
			if err != nil {
				return err
			}
			results[i] = &result{outputID: outputID, outputBody: outputBody, version: entry.CurrentVersion}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Warn("multicast handler failed", "id", d.ID, "code", status.CodeOf(err), "client", clientAddr)
		var body cspctx.StatusBody
		if b, ok := status.BodyOf(err).(cspctx.StatusBody); ok {
			body = b
		}
		return s.statusReply(common, status.CodeOf(err), body)
	}

	for _, r := range results {
		if r != nil {
			return s.dataReply(common, r.outputID, r.version, d.DataFlags, r.outputBody)
		}
	}
	return s.statusReply(common, status.NoFurtherProcessingRequired, nil)
}

func (s *Server) statusReply(common cspctx.Common, code status.Code, body cspctx.StatusBody) ([]byte, error) {
	metrics.MessagesDispatched.WithLabelValues(code.String()).Inc()
	sink := wire.NewSink(16)
	common.MessageType = cspctx.MessageStatus
	if err := framing.EncodeCommonHeader(sink, common); err != nil {
		return nil, err
	}
	st := &cspctx.Status{Common: common, Code: code, Body: body}
	if err := framing.EncodeStatusSubHeader(sink, st); err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}

func (s *Server) dataReply(common cspctx.Common, id wire.StructID, interfaceVersion uint32, dataFlags cspctx.DataFlags, body []byte) ([]byte, error) {
	metrics.MessagesDispatched.WithLabelValues(status.Success.String()).Inc()
	sink := wire.NewSink(32 + len(body))
	common.MessageType = cspctx.MessageData
	if err := framing.EncodeCommonHeader(sink, common); err != nil {
		return nil, err
	}
	d := cspctx.NewData(common, id, interfaceVersion, dataFlags)
	if err := framing.EncodeDataSubHeader(sink, d); err != nil {
		return nil, err
	}
	if _, err := sink.Write(body); err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}

func (s *Server) encodeSettingsReply(common cspctx.Common) ([]byte, error) {
	sink := wire.NewSink(64)
	common.MessageType = cspctx.MessageGetSettings
	if err := framing.EncodeCommonHeader(sink, common); err != nil {
		return nil, err
	}
	if err := s.Settings.Encode(sink, common.BigEndian()); err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}
