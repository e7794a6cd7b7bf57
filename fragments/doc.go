// Package fragments provides low-level encoding and decoding helpers
// to construct and parse instrument vector payloads and their
// subsystem headers.
//
// The provided encoder and decoder are very low level, and do not
// encode any framing semantics. Payloads are packed with no alignment
// padding; multi-byte values use the encoder's byte order, which is
// little endian for every known instrument subsystem.
//
// You should not need to use this package at all, unless you are
// implementing a new extra-header variant, in which case your code
// will be handed a [fragments.Encoder]/[fragments.Decoder] and
// expected to produce correct header fragments with it.
package fragments
