// Package nodewire is the client-side data plane for a tree of
// remotely addressable instrument parameters ("nodes").
//
// An instrument exposes its parameters as a flat set of absolute,
// slash-delimited paths such as /dev1234/demods/0/enable. The server
// reports the set of valid paths and their metadata once per
// connection; nodewire turns that flat registry into a lazily
// materialized [Tree] for navigation, resolves wildcard path
// expressions against it, and converts between the transport's tagged
// wire values and typed Go values, including the device-specific
// binary vector formats with their extra headers.
//
// The package deliberately stops at the deframed message boundary:
// establishing the connection, the schema handshake, and the RPC
// dispatch machinery are external collaborators. [Decode] and
// [Encode] operate on [WireValue] records that the transport layer
// has already deframed, and produce records for it to frame and send.
//
// The companion package [github.com/halverson/nodewire/emulator]
// provides an in-memory stand-in for a real device, useful for
// testing client behavior without hardware.
package nodewire
