// Package framing implements the layered message preamble from spec §4.G:
// common header, data/status/get-settings sub-headers, and the
// flag-compatibility policies a session enforces on each.
package framing

import (
	ctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/status"
	"github.com/marmos91/csp/pkg/wire"
)

// EncodeCommonHeader writes the common header: protocol version (1 byte),
// message type (1 byte), common flags (2 bytes). Per spec §4.G's
// invariant, the common header is always little-endian regardless of
// BigEndianFormat, so a reader can learn that flag before any byte-swap
// logic runs.
func EncodeCommonHeader(sink *wire.Sink, c ctx.Common) error {
	if err := sink.WriteByte(c.ProtocolVersion); err != nil {
		return err
	}
	if err := sink.WriteByte(byte(c.MessageType)); err != nil {
		return err
	}
	return wire.WriteFixed(sink, uint16(c.CommonFlags), false)
}

// DecodeCommonHeader is the dual of EncodeCommonHeader.
func DecodeCommonHeader(src *wire.Source) (ctx.Common, error) {
	var c ctx.Common
	pv, err := src.ReadByte()
	if err != nil {
		return c, err
	}
	mt, err := src.ReadByte()
	if err != nil {
		return c, err
	}
	flags, err := wire.ReadFixed[uint16](src, false)
	if err != nil {
		return c, err
	}
	c.ProtocolVersion = pv
	c.MessageType = ctx.MessageType(mt)
	c.CommonFlags = ctx.CommonFlags(flags)
	return c, nil
}

// EncodeDataSubHeader writes the data sub-header following a common
// header whose MessageType is Data: struct id (16 raw bytes, endianness
// irrelevant — it is an opaque identifier, not an integer), data flags (2
// bytes), interface version (4 bytes). Both integer fields honor the
// session's negotiated byte order.
func EncodeDataSubHeader(sink *wire.Sink, d *ctx.Data) error {
	if err := wire.WriteBytes(sink, d.ID[:]); err != nil {
		return err
	}
	if err := wire.WriteFixed(sink, uint16(d.DataFlags), d.BigEndian()); err != nil {
		return err
	}
	return wire.WriteFixed(sink, d.InterfaceVersion, d.BigEndian())
}

// DecodeDataSubHeader is the dual of EncodeDataSubHeader. common must
// already have been decoded by DecodeCommonHeader.
func DecodeDataSubHeader(src *wire.Source, common ctx.Common) (*ctx.Data, error) {
	idBytes, err := wire.ReadBytes(src, 16)
	if err != nil {
		return nil, err
	}
	flags, err := wire.ReadFixed[uint16](src, common.BigEndian())
	if err != nil {
		return nil, err
	}
	version, err := wire.ReadFixed[uint32](src, common.BigEndian())
	if err != nil {
		return nil, err
	}
	var id wire.StructID
	copy(id[:], idBytes)
	return ctx.NewData(common, id, version, ctx.DataFlags(flags)), nil
}

// EncodeInOutSubHeader writes a data sub-header followed by the caller's
// expected output interface version (spec §4.G, "InOut sub-header").
func EncodeInOutSubHeader(sink *wire.Sink, d *ctx.Data, expectedOutputVersion uint32) error {
	if err := EncodeDataSubHeader(sink, d); err != nil {
		return err
	}
	return wire.WriteFixed(sink, expectedOutputVersion, d.BigEndian())
}

// DecodeInOutSubHeader is the dual of EncodeInOutSubHeader.
func DecodeInOutSubHeader(src *wire.Source, common ctx.Common) (*ctx.Data, uint32, error) {
	d, err := DecodeDataSubHeader(src, common)
	if err != nil {
		return nil, 0, err
	}
	expected, err := wire.ReadFixed[uint32](src, common.BigEndian())
	if err != nil {
		return nil, 0, err
	}
	return d, expected, nil
}

// EncodeStatusSubHeader writes the status code and its kind-specific body.
func EncodeStatusSubHeader(sink *wire.Sink, s *ctx.Status) error {
	if err := wire.WriteFixed(sink, uint32(s.Code), s.BigEndian()); err != nil {
		return err
	}
	if s.Body == nil {
		return nil
	}
	return s.Body.Encode(sink, s.BigEndian())
}

// DecodeStatusSubHeader is the dual of EncodeStatusSubHeader. newBody
// selects the kind-specific body type for the decoded code, returning nil
// for codes with no body (spec §4.H: "Other error codes → no body").
func DecodeStatusSubHeader(src *wire.Source, common ctx.Common, newBody func(status.Code) ctx.StatusBody) (*ctx.Status, error) {
	code, err := wire.ReadFixed[uint32](src, common.BigEndian())
	if err != nil {
		return nil, err
	}
	s := &ctx.Status{Common: common, Code: status.Code(code)}
	if newBody == nil {
		return s, nil
	}
	body := newBody(s.Code)
	if body == nil {
		return s, nil
	}
	if err := body.Decode(src, common.BigEndian()); err != nil {
		return nil, err
	}
	s.Body = body
	return s, nil
}
