// Package persist stores typed values as compressed binary artifacts.
//
// Values are CBOR encoded and then zstd compressed. Loading never fails: a
// missing, truncated or otherwise unreadable artifact yields the type's
// default value so a broken cache never blocks the editor.
package persist

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
)

// maxDecodedSize caps decompressed artifacts.
const maxDecodedSize = 16 << 20

// ErrCorrupt marks artifact bytes that could not be decompressed or decoded.
var ErrCorrupt = errors.New("corrupt artifact")

// CorruptError reports which stage rejected the artifact bytes.
type CorruptError struct {
	Stage string // "decompress" or "decode"
	Err   error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *CorruptError) Unwrap() []error {
	return []error{ErrCorrupt, e.Err}
}

var (
	encMode, _ = cbor.CoreDetEncOptions().EncMode()
	decMode, _ = cbor.DecOptions{
		MaxArrayElements: 1 << 20,
		MaxMapPairs:      1 << 20,
	}.DecMode()

	// Shared coders; EncodeAll and DecodeAll are safe for concurrent use.
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(0),
		zstd.WithDecoderMaxMemory(maxDecodedSize),
	)
)

// Encode serializes v and compresses the result.
func Encode[T any](v T) ([]byte, error) {
	raw, err := encMode.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return encoder.EncodeAll(raw, make([]byte, 0, len(raw))), nil
}

// Decode decompresses data and deserializes it into a T.
func Decode[T any](data []byte) (T, error) {
	var v T

	raw, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return v, &CorruptError{Stage: "decompress", Err: err}
	}
	if err := decMode.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, &CorruptError{Stage: "decode", Err: err}
	}

	return v, nil
}

// DefaultBytes returns the encoded form of def. It never fails: if encoding
// goes wrong the result is an empty slice, which loads back as the default.
func DefaultBytes[T any](def T) []byte {
	data, err := Encode(def)
	if err != nil {
		return []byte{}
	}
	return data
}
