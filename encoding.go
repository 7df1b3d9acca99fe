package vecbuf

import (
	"encoding/binary"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/vecbuf/codec"
	"github.com/hupe1980/vecbuf/compress"
	"github.com/hupe1980/vecbuf/internal/conv"
	"github.com/hupe1980/vecbuf/internal/elemtype"
	"github.com/hupe1980/vecbuf/internal/hash"
	"github.com/hupe1980/vecbuf/internal/native"
)

// Encoded frame layout (header fields little-endian):
//
//	magic "VBUF" | version u8 | backend u8 | order u8 | compression u8 |
//	typeLen u16 | type | length u64 | payloadLen u32 | rawLen u32 |
//	payload | crc32c u32
//
// A native payload is the element bytes in the byte order recorded in the
// header. A fallback payload is
//
//	nilsLen u32 | roaring bitmap of nil slots | codecLen u8 | codec | values
const (
	frameMagic   = "VBUF"
	frameVersion = 1

	orderLittle = 0
	orderBig    = 1

	fixedHeaderLen = len(frameMagic) + 4 + 2 + 8 + 4 + 4
	checksumLen    = 4
)

var hostOrder = func() uint8 {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 1)
	if b[0] == 1 {
		return orderLittle
	}
	return orderBig
}()

type encodeOptions struct {
	compression compress.Type
	codec       codec.Codec
}

// EncodeOption configures Encode.
type EncodeOption func(*encodeOptions)

// WithCompression compresses the payload. Payloads that do not shrink are
// stored uncompressed.
func WithCompression(t compress.Type) EncodeOption {
	return func(o *encodeOptions) {
		o.compression = t
	}
}

// WithValueCodec sets the codec for fallback element values.
// If nil is passed, codec.Default is used.
func WithValueCodec(c codec.Codec) EncodeOption {
	return func(o *encodeOptions) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// MarshalBinary implements encoding.BinaryMarshaler without compression.
func (v *Vector) MarshalBinary() ([]byte, error) {
	return v.Encode()
}

// Encode serializes the vector.
func (v *Vector) Encode(opts ...EncodeOption) ([]byte, error) {
	v.init()
	eo := encodeOptions{compression: compress.None, codec: codec.Default}
	for _, opt := range opts {
		opt(&eo)
	}

	var raw []byte
	switch v.st.kind {
	case BackendNative:
		raw = v.st.buf.Bytes(v.length)
	default:
		p, err := v.encodeValues(eo.codec)
		if err != nil {
			return nil, err
		}
		raw = p
	}

	payload, applied, err := compress.Compress(eo.compression, raw)
	if err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}

	typeLen, err := conv.IntToUint16(len(v.typ.Name))
	if err != nil {
		return nil, fmt.Errorf("element type name: %w", err)
	}
	payloadLen, err := conv.IntToUint32(len(payload))
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	rawLen, err := conv.IntToUint32(len(raw))
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}

	out := make([]byte, 0, fixedHeaderLen+len(v.typ.Name)+len(payload)+checksumLen)
	out = append(out, frameMagic...)
	out = append(out, frameVersion, byte(v.st.kind), hostOrder, byte(applied))
	out = binary.LittleEndian.AppendUint16(out, typeLen)
	out = append(out, v.typ.Name...)
	out = binary.LittleEndian.AppendUint64(out, uint64(v.length))
	out = binary.LittleEndian.AppendUint32(out, payloadLen)
	out = binary.LittleEndian.AppendUint32(out, rawLen)
	out = append(out, payload...)
	out = binary.LittleEndian.AppendUint32(out, hash.CRC32C(out))
	return out, nil
}

func (v *Vector) encodeValues(c codec.Codec) ([]byte, error) {
	vals := v.Values()
	nils := roaring.New()
	for k, val := range vals {
		if val == nil {
			nils.Add(uint32(k))
		}
	}

	bm, err := nils.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("encode nil bitmap: %w", err)
	}
	enc, err := c.Marshal(vals)
	if err != nil {
		return nil, fmt.Errorf("encode values with %s: %w", c.Name(), err)
	}
	bmLen, err := conv.IntToUint32(len(bm))
	if err != nil {
		return nil, err
	}
	name := c.Name()
	if len(name) > 255 {
		return nil, fmt.Errorf("codec name %q too long", name)
	}

	out := make([]byte, 0, 4+len(bm)+1+len(name)+len(enc))
	out = binary.LittleEndian.AppendUint32(out, bmLen)
	out = append(out, bm...)
	out = append(out, byte(len(name)))
	out = append(out, name...)
	out = append(out, enc...)
	return out, nil
}

// Decode reconstructs a vector from data produced by Encode. The options
// apply to the new vector; the backend is chosen by them, not by the data.
func Decode(data []byte, opts ...Option) (*Vector, error) {
	f, err := parseFrame(data)
	if err != nil {
		return nil, err
	}

	v, err := newVector(f.typeName, 0, applyOptions(defaultOptions(), opts))
	if err != nil {
		return nil, err
	}
	if err := v.load(f); err != nil {
		v.Free()
		return nil, err
	}
	return v, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It replaces the
// contents and element type of v, keeping the options v was created with.
func (v *Vector) UnmarshalBinary(data []byte) error {
	f, err := parseFrame(data)
	if err != nil {
		return err
	}

	o := v.opts
	if o.logger == nil {
		o = defaultOptions()
	}
	w, err := newVector(f.typeName, 0, o)
	if err != nil {
		return err
	}
	if err := w.load(f); err != nil {
		w.Free()
		return err
	}

	if v.st.buf != nil || v.st.store != nil {
		v.Free()
	}
	*v = *w
	return nil
}

type frame struct {
	backend  Backend
	order    uint8
	typeName string
	length   int
	raw      []byte
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(format, args...))
}

func parseFrame(data []byte) (frame, error) {
	var f frame
	if len(data) < fixedHeaderLen+checksumLen {
		return f, corrupt("frame too short (%d bytes)", len(data))
	}

	body := data[:len(data)-checksumLen]
	if !hash.Verify(body, binary.LittleEndian.Uint32(data[len(body):])) {
		return f, ErrChecksum
	}
	if string(body[:4]) != frameMagic {
		return f, corrupt("bad magic %q", body[:4])
	}
	if body[4] != frameVersion {
		return f, corrupt("unsupported version %d", body[4])
	}

	f.backend = Backend(body[5])
	if f.backend != BackendNative && f.backend != BackendFallback {
		return f, corrupt("unknown backend %d", body[5])
	}
	f.order = body[6]
	if f.order != orderLittle && f.order != orderBig {
		return f, corrupt("unknown byte order %d", body[6])
	}
	ct := compress.Type(body[7])

	pos := 8
	typeLen := int(binary.LittleEndian.Uint16(body[pos:]))
	pos += 2
	if len(body) < fixedHeaderLen+typeLen {
		return f, corrupt("truncated type name")
	}
	f.typeName = string(body[pos : pos+typeLen])
	pos += typeLen

	length, err := conv.Uint64ToInt(binary.LittleEndian.Uint64(body[pos:]))
	if err != nil {
		return f, corrupt("length: %v", err)
	}
	f.length = length
	pos += 8

	payloadLen := int(binary.LittleEndian.Uint32(body[pos:]))
	rawLen := int(binary.LittleEndian.Uint32(body[pos+4:]))
	pos += 8
	if len(body)-pos != payloadLen {
		return f, corrupt("payload length %d, have %d bytes", payloadLen, len(body)-pos)
	}

	if f.backend == BackendNative {
		t, _ := elemtype.Default.WithNative(true).Lookup(f.typeName)
		width := t.Kind.Width()
		if width == 0 {
			return f, fmt.Errorf("%w: %q", ErrUnknownType, f.typeName)
		}
		if f.length > rawLen/width || f.length*width != rawLen {
			return f, corrupt("native raw length %d for %d elements of %d bytes", rawLen, f.length, width)
		}
	}

	f.raw, err = compress.Decompress(ct, body[pos:], rawLen)
	if err != nil {
		return f, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return f, nil
}

func (v *Vector) load(f frame) error {
	if f.backend == BackendNative {
		return v.loadNative(f)
	}
	return v.loadValues(f)
}

func (v *Vector) loadNative(f frame) error {
	kind := v.typ.Kind
	width := kind.Width()
	if width == 0 {
		return fmt.Errorf("%w: %q", ErrUnknownType, f.typeName)
	}
	if f.length > len(f.raw)/width || len(f.raw) != f.length*width {
		return corrupt("native payload of %d bytes for %d elements of %d bytes", len(f.raw), f.length, width)
	}

	raw := f.raw
	if f.order != hostOrder && width > 1 {
		raw = swapBytes(raw, width)
	}

	if err := v.resize(f.length); err != nil {
		return err
	}

	if v.st.kind == BackendNative {
		copy(v.st.buf.Bytes(f.length), raw)
		return nil
	}

	// Native data loaded into a fallback vector.
	tmp := native.New(kind, nil, nil)
	if err := tmp.Resize(f.length); err != nil {
		return &AllocationError{Bytes: len(raw), cause: err}
	}
	copy(tmp.Bytes(f.length), raw)
	for k := 0; k < f.length; k++ {
		v.st.write(k, tmp.Read(k))
	}
	return nil
}

func (v *Vector) loadValues(f frame) error {
	p := f.raw
	if len(p) < 4 {
		return corrupt("fallback payload too short")
	}
	bmLen := int(binary.LittleEndian.Uint32(p))
	p = p[4:]
	if len(p) < bmLen+1 {
		return corrupt("truncated nil bitmap")
	}

	nils := roaring.New()
	if err := nils.UnmarshalBinary(p[:bmLen]); err != nil {
		return fmt.Errorf("%w: nil bitmap: %w", ErrCorrupt, err)
	}
	p = p[bmLen:]

	nameLen := int(p[0])
	p = p[1:]
	if len(p) < nameLen {
		return corrupt("truncated codec name")
	}
	c, ok := codec.ByName(string(p[:nameLen]))
	if !ok {
		return corrupt("unknown codec %q", p[:nameLen])
	}
	p = p[nameLen:]

	var vals []any
	if err := c.Unmarshal(p, &vals); err != nil {
		return fmt.Errorf("%w: decode values with %s: %w", ErrCorrupt, c.Name(), err)
	}
	if len(vals) != f.length {
		return corrupt("%d values for length %d", len(vals), f.length)
	}

	coerced := make([]any, len(vals))
	for k, val := range vals {
		if nils.Contains(uint32(k)) {
			val = nil
		}
		if val == nil && v.typ.Kind != elemtype.KindAny {
			coerced[k] = conv.Zero(v.typ.Kind)
			continue
		}
		cv, err := v.coerce(val)
		if err != nil {
			return err
		}
		coerced[k] = cv
	}

	if err := v.resize(f.length); err != nil {
		return err
	}
	for k, cv := range coerced {
		v.st.write(k, cv)
	}
	return nil
}

func swapBytes(src []byte, width int) []byte {
	out := make([]byte, len(src))
	for off := 0; off < len(src); off += width {
		for i := 0; i < width; i++ {
			out[off+i] = src[off+width-1-i]
		}
	}
	return out
}
