// Package wire defines the CBOR encoding of the collector RPC.
//
// The protocol is a single request/response pair: the client ships a batch
// of entries in a LogRequest and the collector answers with a LogResponse
// carrying a result code. Messages use CBOR (RFC 8949) with integer map
// keys for compactness; the key constants in message.go are the wire
// contract.
//
// Encoder and decoder modes are configured once, on first use, and shared
// by the whole process.
package wire
