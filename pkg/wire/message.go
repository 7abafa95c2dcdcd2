package wire

import "fmt"

// CBOR map keys for message encoding.
// All collector messages use integer keys for efficiency.
const (
	// Entry keys
	KeyCategory = 1
	KeyMessage  = 2

	// LogRequest keys
	KeyEntries = 1

	// LogResponse keys
	KeyResult = 1
)

// Entry is a single log line addressed to a stream.
//
// CBOR encoding:
//
//	{
//	  1: category,  // string: sanitized stream name
//	  2: message    // bytes: line payload ending in a single newline
//	}
type Entry struct {
	Category string `cbor:"1,keyasint"`
	Message  []byte `cbor:"2,keyasint"`
}

// Validate checks if the entry is valid.
func (e *Entry) Validate() error {
	if e.Category == "" {
		return fmt.Errorf("entry category is empty")
	}
	if len(e.Message) == 0 {
		return fmt.Errorf("entry message is empty")
	}
	return nil
}

// LogRequest is the client-to-collector delivery request.
//
// CBOR encoding:
//
//	{
//	  1: entries  // array of Entry
//	}
type LogRequest struct {
	Entries []Entry `cbor:"1,keyasint"`
}

// Validate checks if the request is valid.
func (r *LogRequest) Validate() error {
	if len(r.Entries) == 0 {
		return fmt.Errorf("log request has no entries")
	}
	for i := range r.Entries {
		if err := r.Entries[i].Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

// LogResponse is the collector's answer to a LogRequest.
//
// CBOR encoding:
//
//	{
//	  1: result  // uint8: 0=ok, 1=try later
//	}
type LogResponse struct {
	Result ResultCode `cbor:"1,keyasint"`
}

// IsOK returns true if the collector accepted the entries.
func (r *LogResponse) IsOK() bool {
	return r.Result.IsOK()
}
