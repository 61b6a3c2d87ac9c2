package commands

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
)

// roundTrip dials addr, writes one length-prefixed frame, and returns the
// server's length-prefixed reply — the same ad hoc framing cspd's server
// command speaks (spec §1 leaves the concrete transport unspecified;
// this is cspctl's own convention for talking to it).
func roundTrip(frame []byte) ([]byte, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	if err := binary.Write(conn, binary.LittleEndian, uint32(len(frame))); err != nil {
		return nil, fmt.Errorf("write frame length: %w", err)
	}
	if _, err := conn.Write(frame); err != nil {
		return nil, fmt.Errorf("write frame body: %w", err)
	}

	var replyLen uint32
	if err := binary.Read(conn, binary.LittleEndian, &replyLen); err != nil {
		return nil, fmt.Errorf("read reply length: %w", err)
	}
	reply := make([]byte, replyLen)
	if _, err := io.ReadFull(conn, reply); err != nil {
		return nil, fmt.Errorf("read reply body: %w", err)
	}
	return reply, nil
}
