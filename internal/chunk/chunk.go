// Package chunk encodes sample paths as CRC-framed Prometheus XOR chunks.
package chunk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"math"

	"github.com/prometheus/prometheus/tsdb/chunkenc"

	"stochwalk/internal/walk"
)

var (
	ErrInvalidChecksum     = errors.New("checksum mismatch: data is corrupted")
	ErrTooSmall            = errors.New("data too small to be a valid chunk")
	ErrUnsupportedEncoding = errors.New("unsupported encoding type")
	ErrTooManySamples      = errors.New("path has too many samples for one chunk")
)

// TimeScale maps path time onto integer chunk timestamps. Decoded times are
// therefore exact to 1/TimeScale.
const TimeScale = 1e9

// MaxSamples is the XOR chunk sample limit.
const MaxSamples = math.MaxUint16

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Encode packs the times and values of p. Jump metadata is not kept.
func Encode(p *walk.Path) ([]byte, error) {
	if p.Len() > MaxSamples {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManySamples, p.Len(), MaxSamples)
	}

	c := chunkenc.NewXORChunk()
	app, err := c.Appender()
	if err != nil {
		return nil, fmt.Errorf("chunk appender: %w", err)
	}
	for i, v := range p.Values {
		app.Append(int64(math.Round(p.Times[i]*TimeScale)), v)
	}
	return Wrap(c), nil
}

func Decode(data []byte) (*walk.Path, error) {
	c, err := Unwrap(data)
	if err != nil {
		return nil, err
	}

	n := c.NumSamples()
	p := &walk.Path{
		Times:  make([]float64, 0, n),
		Values: make([]float64, 0, n),
	}
	it := c.Iterator(nil)
	for it.Next() != chunkenc.ValNone {
		t, v := it.At()
		p.Times = append(p.Times, float64(t)/TimeScale)
		p.Values = append(p.Values, v)
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("chunk iteration: %w", err)
	}
	return p, nil
}

// Wrap frames a chunk as encoding byte, chunk bytes, big endian CRC32-C.
func Wrap(c chunkenc.Chunk) []byte {
	raw := c.Bytes()

	res := make([]byte, 1+len(raw)+4)
	res[0] = byte(c.Encoding())
	copy(res[1:], raw)

	checksum := crc32.Checksum(res[:1+len(raw)], castagnoli)
	binary.BigEndian.PutUint32(res[1+len(raw):], checksum)
	return res
}

func Unwrap(data []byte) (chunkenc.Chunk, error) {
	if len(data) < 5 {
		return nil, ErrTooSmall
	}

	payload := data[:len(data)-4]
	want := binary.BigEndian.Uint32(data[len(data)-4:])
	if got := crc32.Checksum(payload, castagnoli); got != want {
		return nil, ErrInvalidChecksum
	}

	encoding := chunkenc.Encoding(payload[0])
	if encoding != chunkenc.EncXOR {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedEncoding, encoding)
	}

	c := chunkenc.NewXORChunk()
	c.Reset(payload[1:])
	return c, nil
}
