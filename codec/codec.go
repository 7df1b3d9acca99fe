// Package codec encodes the element values of fallback vectors.
//
// Encoded vectors record the codec name so they can be decoded with the
// codec that wrote them.
package codec

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec used when none is configured.
var Default Codec = MsgPack{}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	case "jsoniter":
		return JSONIter{}, true
	case "msgpack":
		return MsgPack{}, true
	default:
		return nil, false
	}
}
