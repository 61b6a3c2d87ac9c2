// Package version implements the per-struct version converter engine from
// spec §4.F: walking a type's private-version chain to find the highest
// mutually-supported version, and invoking a generated (here:
// hand-written, per the contract spec §9 allows) converter when peer
// versions differ.
package version

import (
	ctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/metrics"
	"github.com/marmos91/csp/pkg/status"
	"github.com/marmos91/csp/pkg/traits"
	"github.com/marmos91/csp/pkg/wire"
)

// Converter is the per-type legacy-layout bridge a Serializable type
// supplies when it has more than one private version. ToOld serializes
// value as the legacy layout identified by targetVersion; FromOld decodes
// a legacy layout identified by sourceVersion and returns the equivalent
// current-layout value.
type Converter[T traits.Serializable] interface {
	ToOld(d *ctx.Data, sink *wire.Sink, value T, targetVersion uint32) error
	FromOld(d *ctx.Data, src *wire.Source, sourceVersion uint32) (T, error)
}

// SerializePrelude implements spec §4.F's serialize-side algorithm. It is
// the first thing a generated/hand-written serialize(T, ctx) routine
// calls (spec §4.E's generated-routine contract, step 1).
//
// Returns status.NoFurtherProcessingRequired when it fully handled
// serialization (the caller must not also emit the current layout's
// fields), status.Success when the caller should proceed normally, or an
// error.
func SerializePrelude[T traits.Serializable](d *ctx.Data, sink *wire.Sink, value T, converter Converter[T]) (status.Code, error) {
	if !d.DataFlags.Has(ctx.InterfaceVersionsNotMatch) {
		return status.Success, nil
	}

	bestCommon, ok := traits.BestCommonVersion(value, d.InterfaceVersion)
	if !ok {
		return status.ErrNotSupportedInterfaceVersion, status.New(
			status.ErrNotSupportedInterfaceVersion,
			"peer interface version is older than every version this struct supports",
		)
	}

	if bestCommon == traits.CurrentVersion(value) {
		return status.Success, nil
	}

	if converter == nil {
		return status.ErrNotSupportedInterfaceVersion, status.New(
			status.ErrNotSupportedInterfaceVersion,
			"version conversion required but no converter registered",
		)
	}

	if err := converter.ToOld(d, sink, value, bestCommon); err != nil {
		return status.ErrInternal, err
	}
	metrics.VersionConversions.WithLabelValues("to_old").Inc()
	return status.NoFurtherProcessingRequired, nil
}

// DeserializePrelude implements spec §4.F's deserialize-side dual. handled
// reports whether the prelude fully handled decoding (NoFurtherProcessing
// case); when handled is false the caller proceeds to decode the current
// layout itself.
func DeserializePrelude[T traits.Serializable](d *ctx.Data, src *wire.Source, converter Converter[T]) (value T, handled bool, err error) {
	if !d.DataFlags.Has(ctx.InterfaceVersionsNotMatch) || !d.VersionsMismatched {
		return value, false, nil
	}
	if converter == nil {
		return value, false, nil
	}
	decoded, err := converter.FromOld(d, src, d.InterfaceVersion)
	if err != nil {
		return value, false, err
	}
	metrics.VersionConversions.WithLabelValues("from_old").Inc()
	return decoded, true, nil
}
