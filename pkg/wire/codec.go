package wire

import (
	"fmt"
	"io"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder mode for collector messages.
// Configured for deterministic encoding with integer keys.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for collector messages.
var decMode cbor.DecMode

var codecOnce sync.Once

// initCodec builds the encoder and decoder modes. It runs once per
// process, on first use rather than at import time, so programs that only
// use local sinks never pay for it.
func initCodec() {
	codecOnce.Do(func() {
		var err error

		// Deterministic output so identical requests encode identically
		encOpts := cbor.EncOptions{
			Sort:          cbor.SortCanonical,
			IndefLength:   cbor.IndefLengthForbidden,
			NilContainers: cbor.NilContainerAsNull,
			Time:          cbor.TimeUnix,
		}
		encMode, err = encOpts.EncMode()
		if err != nil {
			panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
		}

		// Lenient decoding for forward compatibility with newer collectors
		decOpts := cbor.DecOptions{
			DupMapKey:         cbor.DupMapKeyQuiet,
			IndefLength:       cbor.IndefLengthAllowed,
			ExtraReturnErrors: cbor.ExtraDecErrorNone,
		}
		decMode, err = decOpts.DecMode()
		if err != nil {
			panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
		}
	})
}

// Marshal encodes a value to CBOR bytes.
func Marshal(v any) ([]byte, error) {
	initCodec()
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR bytes into a value.
func Unmarshal(data []byte, v any) error {
	initCodec()
	return decMode.Unmarshal(data, v)
}

// NewEncoder creates a new CBOR encoder that writes to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	initCodec()
	return encMode.NewEncoder(w)
}

// NewDecoder creates a new CBOR decoder that reads from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	initCodec()
	return decMode.NewDecoder(r)
}

// EncodeLogRequest encodes a log request to CBOR bytes.
func EncodeLogRequest(req *LogRequest) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid log request: %w", err)
	}
	return Marshal(req)
}

// DecodeLogRequest decodes CBOR bytes into a log request.
func DecodeLogRequest(data []byte) (*LogRequest, error) {
	var req LogRequest
	if err := Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to decode log request: %w", err)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid log request: %w", err)
	}
	return &req, nil
}

// EncodeLogResponse encodes a log response to CBOR bytes.
func EncodeLogResponse(resp *LogResponse) ([]byte, error) {
	return Marshal(resp)
}

// DecodeLogResponse decodes CBOR bytes into a log response.
func DecodeLogResponse(data []byte) (*LogResponse, error) {
	var resp LogResponse
	if err := Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode log response: %w", err)
	}
	return &resp, nil
}
