package stego_test

import (
	"bytes"
	"crypto/rand"
	"testing"

	"ciphera/internal/domain"
	"ciphera/internal/stego"
)

func randomCover(t *testing.T, width, height int) []byte {
	t.Helper()
	cover := make([]byte, width*height*3)
	if _, err := rand.Read(cover); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	return cover
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	width, height := 64, 64
	cover := randomCover(t, width, height)
	message := []byte("the raven flies at midnight")

	stegoImage, err := stego.Encode(message, cover, width, height)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if bytes.Equal(stegoImage, cover) {
		t.Fatal("Encode must modify the cover image")
	}

	decoded, err := stego.Decode(stegoImage, width, height)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded, message) {
		t.Fatalf("got %q, want %q", decoded, message)
	}
}

func TestCapacity_MatchesFormula(t *testing.T) {
	got := stego.Capacity(1920, 1080)
	want := (1920*1080*3)/8 - 4
	if got != want {
		t.Fatalf("got %d, want %d", got, want)
	}
}

func TestEncode_RejectsOversizedMessage(t *testing.T) {
	width, height := 10, 10
	cover := randomCover(t, width, height)
	message := make([]byte, 1000)

	if _, err := stego.Encode(message, cover, width, height); err != domain.ErrMessageTooLarge {
		t.Fatalf("want ErrMessageTooLarge, got %v", err)
	}
}

func TestEncode_EmptyMessage(t *testing.T) {
	width, height := 32, 32
	cover := randomCover(t, width, height)

	stegoImage, err := stego.Encode(nil, cover, width, height)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := stego.Decode(stegoImage, width, height)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded) != 0 {
		t.Fatalf("got %d bytes, want 0", len(decoded))
	}
}
