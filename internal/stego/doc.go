// Package stego hides and recovers a length-prefixed payload in the
// least-significant bit of each channel of an interleaved RGB image
// buffer.
//
// The wire format is a 4-byte little-endian length followed by the
// payload, serialised bit-by-bit MSB-first across the R, G, B channels
// of consecutive pixels. Capacity for a w*h image is floor(w*h*3/8)-4
// bytes. Callers are expected to AEAD-encrypt the payload before
// hiding it; this package carries no confidentiality of its own.
package stego
