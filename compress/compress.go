// Package compress wraps the block compressors used for encoded vectors.
package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type identifies a compression algorithm. Its value is stored in encoded
// vectors and must not change.
type Type uint8

const (
	// None stores data as is.
	None Type = 0
	// LZ4 is LZ4 block compression (fast).
	LZ4 Type = 1
	// Zstd is Zstandard compression (better ratio).
	Zstd Type = 2
	// S2 is the Snappy-compatible S2 block format.
	S2 Type = 3
)

var (
	// ErrUnknownType is returned for a compression type this package does
	// not implement.
	ErrUnknownType = errors.New("compress: unknown type")
	// ErrSizeMismatch is returned when decompressed data does not have the
	// recorded length.
	ErrSizeMismatch = errors.New("compress: decompressed size mismatch")
	// ErrRatioExceeded is returned when a recorded length claims more than
	// MaxRatio times the compressed size.
	ErrRatioExceeded = errors.New("compress: decompressed size exceeds ratio limit")
)

// MaxRatio bounds the expansion Decompress accepts. Compress never emits a
// block above it: such results are recompressed with LZ4, whose format
// cannot expand past roughly 255:1.
const MaxRatio = 4096

// maxDecoderMemory caps zstd output; encoded lengths are 32-bit.
const maxDecoderMemory = math.MaxUint32

// MaxDecodedLen returns the largest rawLen Decompress accepts for n bytes of
// compressed input.
func MaxDecodedLen(n int) int {
	if n > math.MaxInt/MaxRatio {
		return math.MaxInt
	}
	return n * MaxRatio
}

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	case S2:
		return "s2"
	default:
		return fmt.Sprintf("compress(%d)", uint8(t))
	}
}

// Parse returns the type named s ("none", "lz4", "zstd" or "s2").
func Parse(s string) (Type, error) {
	for _, t := range []Type{None, LZ4, Zstd, S2} {
		if t.String() == s {
			return t, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxDecoderMemory),
	)
	return dec
}

// Compress compresses src with t. It returns the type actually applied:
// None when the data is empty or does not shrink below 90% of its size, and
// LZ4 when t would expand past MaxRatio.
func Compress(t Type, src []byte) ([]byte, Type, error) {
	if t == None || len(src) == 0 {
		return src, None, nil
	}

	out, err := encode(t, src)
	if err != nil {
		return nil, None, err
	}
	if t != LZ4 && len(out) > 0 && len(src) > MaxDecodedLen(len(out)) {
		t = LZ4
		if out, err = encode(LZ4, src); err != nil {
			return nil, None, err
		}
	}

	if len(out) == 0 || float64(len(out)) > float64(len(src))*0.9 {
		return src, None, nil
	}
	return out, t, nil
}

func encode(t Type, src []byte) ([]byte, error) {
	var out []byte
	switch t {
	case LZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(src)))
		n, err := lz4.CompressBlock(src, buf, nil)
		if err != nil {
			return nil, err
		}
		out = buf[:n]
	case Zstd:
		enc := getZstdEncoder()
		out = enc.EncodeAll(src, nil)
		zstdEncoderPool.Put(enc)
	case S2:
		out = s2.Encode(nil, src)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint8(t))
	}
	return out, nil
}

// Decompress reverses Compress. rawLen is the length of the original data;
// it is checked against MaxDecodedLen before any output is allocated.
func Decompress(t Type, src []byte, rawLen int) ([]byte, error) {
	if t == None {
		if len(src) != rawLen {
			return nil, ErrSizeMismatch
		}
		return src, nil
	}
	if rawLen < 0 {
		return nil, ErrSizeMismatch
	}
	if rawLen > MaxDecodedLen(len(src)) {
		return nil, fmt.Errorf("%w: %d bytes from %d", ErrRatioExceeded, rawLen, len(src))
	}

	switch t {
	case LZ4:
		dst := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(src, dst)
		if err != nil {
			return nil, err
		}
		if n != rawLen {
			return nil, ErrSizeMismatch
		}
		return dst, nil
	case Zstd:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)

		// Stream through a limit so a frame that expands past rawLen
		// fails without materializing the excess.
		if err := dec.Reset(bytes.NewReader(src)); err != nil {
			return nil, err
		}
		out := bytes.NewBuffer(make([]byte, 0, rawLen))
		if _, err := out.ReadFrom(io.LimitReader(dec, int64(rawLen)+1)); err != nil {
			return nil, err
		}
		if out.Len() != rawLen {
			return nil, ErrSizeMismatch
		}
		return out.Bytes(), nil
	case S2:
		n, err := s2.DecodedLen(src)
		if err != nil {
			return nil, err
		}
		if n != rawLen {
			return nil, ErrSizeMismatch
		}
		return s2.Decode(make([]byte, rawLen), src)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint8(t))
	}
}
