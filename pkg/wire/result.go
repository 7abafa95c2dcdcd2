package wire

// ResultCode is the collector's verdict on a log request.
type ResultCode uint8

const (
	// ResultOK indicates the entries were accepted.
	ResultOK ResultCode = 0

	// ResultTryLater indicates the collector is overloaded and did not
	// store the entries. The client treats the line as dropped; there is
	// no queueing.
	ResultTryLater ResultCode = 1
)

// String returns the result code name.
func (c ResultCode) String() string {
	switch c {
	case ResultOK:
		return "OK"
	case ResultTryLater:
		return "TRY_LATER"
	default:
		return "UNKNOWN"
	}
}

// IsOK returns true if the result indicates acceptance.
func (c ResultCode) IsOK() bool {
	return c == ResultOK
}
