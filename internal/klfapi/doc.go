// Package klfapi defines the KLF200 gateway command code space.
//
// Every frame on the wire carries a signed 16-bit command code. Real
// protocol commands are small positive constants organized in REQ/CFM/NTF
// triplets per feature area (a request, its direct confirmation, and zero
// or more asynchronous notifications). Negative codes are pseudo-commands
// used internally and never appear on the wire.
package klfapi
