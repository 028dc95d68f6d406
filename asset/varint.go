package asset

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Width markers of the variable length integer encoding shared with the game
// client. Values below the first marker are stored in a single byte.
const (
	varintU16  = 251
	varintU32  = 252
	varintU64  = 253
	varintU128 = 254
)

var ErrVarint = errors.New("malformed varint")

// AppendUvarint appends the encoding of v to buf.
func AppendUvarint(buf []byte, v uint64) []byte {
	switch {
	case v < varintU16:
		return append(buf, byte(v))
	case v <= 0xffff:
		return binary.LittleEndian.AppendUint16(append(buf, varintU16), uint16(v))
	case v <= 0xffffffff:
		return binary.LittleEndian.AppendUint32(append(buf, varintU32), uint32(v))
	default:
		return binary.LittleEndian.AppendUint64(append(buf, varintU64), v)
	}
}

// ReadUvarint reads one encoded integer. 128 bit values are accepted as long
// as they fit 64 bits.
func ReadUvarint(r io.ByteReader) (uint64, error) {
	marker, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	var size int
	switch marker {
	case varintU16:
		size = 2
	case varintU32:
		size = 4
	case varintU64:
		size = 8
	case varintU128:
		size = 16
	case 255:
		return 0, errors.Wrap(ErrVarint, "reserved marker 255")
	default:
		return uint64(marker), nil
	}

	var v uint64
	for i := 0; i < size; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		if i >= 8 {
			if b != 0 {
				return 0, errors.Wrap(ErrVarint, "value overflows 64 bits")
			}
			continue
		}
		v |= uint64(b) << (8 * i)
	}
	return v, nil
}
