package framing

import (
	ctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/status"
	"github.com/marmos91/csp/pkg/wire"
)

// The bodies below are bit-exact encodings of spec §4.H's status-reply
// payloads, discriminated by status code. Every body implements
// ctx.StatusBody so DecodeStatusSubHeader can construct and fill the
// right one generically.

// ProtocolVersionMismatch is the body for ErrNotSupportedProtocolVersion:
// the list of protocol versions this side supports, and its mandatory
// common flags, so the peer can retry with a compatible choice.
type ProtocolVersionMismatch struct {
	SupportedVersions []uint8
	MandatoryCommon   ctx.CommonFlags
}

func (b *ProtocolVersionMismatch) Encode(sink *wire.Sink, bigEndian bool) error {
	if len(b.SupportedVersions) > 255 {
		return status.New(status.ErrInvalidArgument, "too many supported protocol versions")
	}
	if err := sink.WriteByte(byte(len(b.SupportedVersions))); err != nil {
		return err
	}
	for _, v := range b.SupportedVersions {
		if err := sink.WriteByte(v); err != nil {
			return err
		}
	}
	return wire.WriteFixed(sink, uint16(b.MandatoryCommon), bigEndian)
}

func (b *ProtocolVersionMismatch) Decode(src *wire.Source, bigEndian bool) error {
	count, err := src.ReadByte()
	if err != nil {
		return err
	}
	b.SupportedVersions = make([]uint8, count)
	for i := range b.SupportedVersions {
		v, err := src.ReadByte()
		if err != nil {
			return err
		}
		b.SupportedVersions[i] = v
	}
	flags, err := wire.ReadFixed[uint16](src, bigEndian)
	if err != nil {
		return err
	}
	b.MandatoryCommon = ctx.CommonFlags(flags)
	return nil
}

// InterfaceVersionMismatch is the body for ErrNotSupportedInterfaceVersion:
// the offending struct id and the acceptable version range.
type InterfaceVersionMismatch struct {
	ID             wire.StructID
	MinSupported   uint32
	CurrentSupported uint32
}

func (b *InterfaceVersionMismatch) Encode(sink *wire.Sink, bigEndian bool) error {
	if err := wire.WriteBytes(sink, b.ID[:]); err != nil {
		return err
	}
	if err := wire.WriteFixed(sink, b.MinSupported, bigEndian); err != nil {
		return err
	}
	return wire.WriteFixed(sink, b.CurrentSupported, bigEndian)
}

func (b *InterfaceVersionMismatch) Decode(src *wire.Source, bigEndian bool) error {
	idBytes, err := wire.ReadBytes(src, 16)
	if err != nil {
		return err
	}
	copy(b.ID[:], idBytes)
	min, err := wire.ReadFixed[uint32](src, bigEndian)
	if err != nil {
		return err
	}
	cur, err := wire.ReadFixed[uint32](src, bigEndian)
	if err != nil {
		return err
	}
	b.MinSupported = min
	b.CurrentSupported = cur
	return nil
}

// InOutVersionMismatch is the body for
// ErrNotSupportedInOutInterfaceVersion: two InterfaceVersionMismatch
// triples, one for the input struct and one for the output struct.
type InOutVersionMismatch struct {
	Input  InterfaceVersionMismatch
	Output InterfaceVersionMismatch
}

func (b *InOutVersionMismatch) Encode(sink *wire.Sink, bigEndian bool) error {
	if err := b.Input.Encode(sink, bigEndian); err != nil {
		return err
	}
	return b.Output.Encode(sink, bigEndian)
}

func (b *InOutVersionMismatch) Decode(src *wire.Source, bigEndian bool) error {
	if err := b.Input.Decode(src, bigEndian); err != nil {
		return err
	}
	return b.Output.Decode(src, bigEndian)
}

// CommonFlagsMismatch is the body for
// ErrNotCompatibleCommonFlagsSettings.
type CommonFlagsMismatch struct {
	Forbidden ctx.CommonFlags
	Mandatory ctx.CommonFlags
}

func (b *CommonFlagsMismatch) Encode(sink *wire.Sink, bigEndian bool) error {
	if err := wire.WriteFixed(sink, uint16(b.Forbidden), bigEndian); err != nil {
		return err
	}
	return wire.WriteFixed(sink, uint16(b.Mandatory), bigEndian)
}

func (b *CommonFlagsMismatch) Decode(src *wire.Source, bigEndian bool) error {
	f, err := wire.ReadFixed[uint16](src, bigEndian)
	if err != nil {
		return err
	}
	m, err := wire.ReadFixed[uint16](src, bigEndian)
	if err != nil {
		return err
	}
	b.Forbidden = ctx.CommonFlags(f)
	b.Mandatory = ctx.CommonFlags(m)
	return nil
}

// DataFlagsMismatch is the body for ErrNotCompatibleDataFlagsSettings.
type DataFlagsMismatch struct {
	Forbidden ctx.DataFlags
	Mandatory ctx.DataFlags
	ID        wire.StructID
}

func (b *DataFlagsMismatch) Encode(sink *wire.Sink, bigEndian bool) error {
	if err := wire.WriteFixed(sink, uint16(b.Forbidden), bigEndian); err != nil {
		return err
	}
	if err := wire.WriteFixed(sink, uint16(b.Mandatory), bigEndian); err != nil {
		return err
	}
	return wire.WriteBytes(sink, b.ID[:])
}

func (b *DataFlagsMismatch) Decode(src *wire.Source, bigEndian bool) error {
	f, err := wire.ReadFixed[uint16](src, bigEndian)
	if err != nil {
		return err
	}
	m, err := wire.ReadFixed[uint16](src, bigEndian)
	if err != nil {
		return err
	}
	idBytes, err := wire.ReadBytes(src, 16)
	if err != nil {
		return err
	}
	b.Forbidden = ctx.DataFlags(f)
	b.Mandatory = ctx.DataFlags(m)
	copy(b.ID[:], idBytes)
	return nil
}

// NewBodyForCode returns the zero-valued body type the given status code
// carries, or nil for codes with no body (spec §4.H).
func NewBodyForCode(code status.Code) ctx.StatusBody {
	switch code {
	case status.ErrNotSupportedProtocolVersion:
		return &ProtocolVersionMismatch{}
	case status.ErrNotSupportedInterfaceVersion:
		return &InterfaceVersionMismatch{}
	case status.ErrNotSupportedInOutInterfaceVersion:
		return &InOutVersionMismatch{}
	case status.ErrNotCompatibleCommonFlagsSettings:
		return &CommonFlagsMismatch{}
	case status.ErrNotCompatibleDataFlagsSettings:
		return &DataFlagsMismatch{}
	default:
		return nil
	}
}
