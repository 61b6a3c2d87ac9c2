package examples

import (
	"encoding/binary"

	"github.com/google/uuid"

	"github.com/marmos91/csp/pkg/codec"
	ctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/status"
	"github.com/marmos91/csp/pkg/traits"
	"github.com/marmos91/csp/pkg/version"
	"github.com/marmos91/csp/pkg/wire"
)

var locationStructID = wire.StructID(uuid.MustParse("8f14e45f-ceea-467e-b0f0-000000001001"))

// Location is a SimplyAssignableAlignedToOne struct at current private
// version 3, used to exercise spec §4.F's version converter path
// (scenario 5: "Sender's current version 3; receiver maxes at version
// 1; privateVersions includes 1 on both sides"). AltCM was added in
// version 2 and Tag in version 3; both are dropped by the V1 converter,
// so round-trip equality holds only for the fields common to both
// versions (Lat, Lon).
type Location struct {
	Lat   int32
	Lon   int32
	AltCM int32
	Tag   [8]byte
}

func (Location) Traits() traits.Trait      { return traits.SimplyAssignableAlignedToOne }
func (Location) StructID() wire.StructID   { return locationStructID }
func (Location) PrivateVersions() []uint32 { return []uint32{3, 2, 1} }

// RawBytes packs every field little-endian with no padding, the image
// the fast path writes when no endian swap and no width transform is in
// play (spec §4.E condition 4: AlignedToOne is not EndiannessTolerant, so
// FastPathEligible already refuses this path whenever a swap is needed).
func (l Location) RawBytes() []byte {
	b := make([]byte, 20)
	binary.LittleEndian.PutUint32(b[0:4], uint32(l.Lat))
	binary.LittleEndian.PutUint32(b[4:8], uint32(l.Lon))
	binary.LittleEndian.PutUint32(b[8:12], uint32(l.AltCM))
	copy(b[12:20], l.Tag[:])
	return b
}

func (l *Location) SetRawBytes(b []byte) error {
	if len(b) != 20 {
		return status.New(status.ErrDataCorrupted, "Location wire image must be exactly 20 bytes")
	}
	l.Lat = int32(binary.LittleEndian.Uint32(b[0:4]))
	l.Lon = int32(binary.LittleEndian.Uint32(b[4:8]))
	l.AltCM = int32(binary.LittleEndian.Uint32(b[8:12]))
	copy(l.Tag[:], b[12:20])
	return nil
}

// SerializeFields is the generated-routine fallback for sessions the
// fast path refuses (a big-endian session, one mid version-convert, or
// one negotiating SizeOfIntegersMayBeNotEqual): spec §4.E's "Otherwise"
// branch, field by field. Lat/Lon/AltCM route through
// codec.SerializeSigned, which applies spec §4.D's integer-width
// transform whenever the session requires it.
func (l Location) SerializeFields(d *ctx.Data, sink *wire.Sink) error {
	if err := codec.SerializeSigned(d, sink, l.Lat); err != nil {
		return err
	}
	if err := codec.SerializeSigned(d, sink, l.Lon); err != nil {
		return err
	}
	if err := codec.SerializeSigned(d, sink, l.AltCM); err != nil {
		return err
	}
	_, err := sink.Write(l.Tag[:])
	return err
}

func (l *Location) DeserializeFields(d *ctx.Data, src *wire.Source) error {
	lat, err := codec.DeserializeSigned[int32](d, src)
	if err != nil {
		return err
	}
	lon, err := codec.DeserializeSigned[int32](d, src)
	if err != nil {
		return err
	}
	alt, err := codec.DeserializeSigned[int32](d, src)
	if err != nil {
		return err
	}
	tag, err := src.ReadN(8)
	if err != nil {
		return err
	}
	l.Lat, l.Lon, l.AltCM = lat, lon, alt
	copy(l.Tag[:], tag)
	return nil
}

// LocationConverter implements version.Converter[Location], bridging
// current-version Location values to/from the version-1 wire layout: two
// fixed-width coordinates, no altitude, no tag.
type LocationConverter struct{}

var _ version.Converter[Location] = LocationConverter{}

func (LocationConverter) ToOld(d *ctx.Data, sink *wire.Sink, value Location, targetVersion uint32) error {
	if targetVersion != 1 {
		return status.New(status.ErrNotSupportedInterfaceVersion, "Location has no converter for the requested legacy version")
	}
	if err := wire.WriteFixedSigned(sink, value.Lat, d.BigEndian()); err != nil {
		return err
	}
	return wire.WriteFixedSigned(sink, value.Lon, d.BigEndian())
}

func (LocationConverter) FromOld(d *ctx.Data, src *wire.Source, sourceVersion uint32) (Location, error) {
	var loc Location
	if sourceVersion != 1 {
		return loc, status.New(status.ErrNotSupportedInterfaceVersion, "Location has no converter for the received legacy version")
	}
	lat, err := wire.ReadFixedSigned[int32](src, d.BigEndian())
	if err != nil {
		return loc, err
	}
	lon, err := wire.ReadFixedSigned[int32](src, d.BigEndian())
	if err != nil {
		return loc, err
	}
	loc.Lat, loc.Lon = lat, lon
	return loc, nil
}
