package chunk

import (
	"testing"

	"github.com/prometheus/prometheus/tsdb/chunkenc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stochwalk/internal/walk"
)

func TestEncodeDecode(t *testing.T) {
	path, err := walk.GenerateJumpDiffusion(walk.NewSource(4), 100, 0.1, 0.2, 1, 0, 0.1, 5, walk.DefaultDt)
	require.NoError(t, err)

	data, err := Encode(path)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, path.Values, decoded.Values)
	require.Len(t, decoded.Times, path.Len())
	for i := range path.Times {
		assert.InDelta(t, path.Times[i], decoded.Times[i], 1/TimeScale)
	}
	assert.Empty(t, decoded.Jumps)
}

func TestDecode_Corrupted(t *testing.T) {
	path, err := walk.GenerateGBM(walk.NewSource(1), 100, 0, 0.2, 1, 0.1)
	require.NoError(t, err)
	data, err := Encode(path)
	require.NoError(t, err)

	data[3] ^= 0xff
	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrInvalidChecksum)

	_, err = Decode([]byte{1, 2})
	assert.ErrorIs(t, err, ErrTooSmall)
}

func TestUnwrap_UnsupportedEncoding(t *testing.T) {
	// valid checksum, wrong encoding byte
	data := Wrap(fakeChunk{Chunk: chunkenc.NewXORChunk(), enc: chunkenc.EncHistogram})
	_, err := Unwrap(data)
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestEncode_TooManySamples(t *testing.T) {
	n := MaxSamples + 1
	p := &walk.Path{Times: make([]float64, n), Values: make([]float64, n)}
	_, err := Encode(p)
	assert.ErrorIs(t, err, ErrTooManySamples)
}

type fakeChunk struct {
	chunkenc.Chunk
	enc chunkenc.Encoding
}

func (f fakeChunk) Encoding() chunkenc.Encoding {
	return f.enc
}
