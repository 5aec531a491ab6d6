package stego

import (
	"encoding/binary"

	"ciphera/internal/domain"
)

const lengthPrefixBytes = 4

// Capacity returns the maximum message length, in bytes, that Encode
// can hide in a w*h RGB cover image, after the 4-byte length prefix.
func Capacity(width, height int) int {
	cap := (width * height * 3) / 8
	if cap < lengthPrefixBytes {
		return 0
	}
	return cap - lengthPrefixBytes
}

// Encode hides message inside cover, an interleaved R,G,B byte buffer
// of width*height*3 bytes, by overwriting the least-significant bit of
// each channel with one bit of a length-prefixed payload, MSB-first.
// It returns a new buffer; cover is not modified.
func Encode(message, cover []byte, width, height int) ([]byte, error) {
	if len(cover) != width*height*3 {
		return nil, domain.ErrBadParameters
	}
	if len(message) > Capacity(width, height) {
		return nil, domain.ErrMessageTooLarge
	}

	payload := make([]byte, lengthPrefixBytes+len(message))
	binary.LittleEndian.PutUint32(payload, uint32(len(message)))
	copy(payload[lengthPrefixBytes:], message)

	out := append([]byte(nil), cover...)
	totalBits := len(payload) * 8
	for bitIndex := 0; bitIndex < totalBits; bitIndex++ {
		byteIndex := bitIndex / 8
		bitPosition := 7 - (bitIndex % 8)
		bit := (payload[byteIndex] >> bitPosition) & 1
		out[bitIndex] = (out[bitIndex] & 0xFE) | bit
	}
	return out, nil
}

// Decode extracts a message previously hidden by Encode from a
// width*height*3 RGB buffer.
func Decode(stegoImage []byte, width, height int) ([]byte, error) {
	if len(stegoImage) != width*height*3 {
		return nil, domain.ErrBadParameters
	}

	prefixBits := lengthPrefixBytes * 8
	if len(stegoImage) < prefixBits {
		return nil, domain.ErrCorruptPayload
	}
	prefix := extractBytes(stegoImage, 0, lengthPrefixBytes)
	msgLen := int(binary.LittleEndian.Uint32(prefix))

	totalBytes := lengthPrefixBytes + msgLen
	if totalBytes*8 > len(stegoImage) {
		return nil, domain.ErrCorruptPayload
	}
	return extractBytes(stegoImage, 0, totalBytes)[lengthPrefixBytes:], nil
}

// extractBytes reads byteCount bytes' worth of bits starting at
// bitOffset out of the image's LSBs, MSB-first per byte.
func extractBytes(image []byte, bitOffset, byteCount int) []byte {
	out := make([]byte, byteCount)
	for i := 0; i < byteCount; i++ {
		var b byte
		for bit := 0; bit < 8; bit++ {
			b = (b << 1) | (image[bitOffset+i*8+bit] & 1)
		}
		out[i] = b
	}
	return out
}
