package channel

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

// pskBytes is the raw key length for a tactical channel PSK.
const pskBytes = 32

// secondaryChannelIndex is the device slot tactical channels occupy. Slot 0
// stays on the mesh default channel.
const secondaryChannelIndex = 1

var ErrName = errors.New("channel name must not be empty")

// readRandom is a seam so tests can exercise RNG failure.
var readRandom = func(b []byte) error {
	_, err := io.ReadFull(rand.Reader, b)
	return err
}

// Descriptor is an ephemeral tactical channel. It is never persisted here;
// operators copy its fields into their radios.
type Descriptor struct {
	Name         string `json:"name"`
	PSKBase64    string `json:"psk_base64"`
	ChannelIndex int    `json:"channel_index"`
	Description  string `json:"description"`
}

// Generate produces a randomly keyed tactical channel descriptor. The PSK is
// 32 bytes from the CSPRNG, standard base64. An unavailable random source is
// surfaced as-is: no retry, no weaker fallback.
func Generate(name string) (Descriptor, error) {
	if strings.TrimSpace(name) == "" {
		return Descriptor{}, ErrName
	}

	key := make([]byte, pskBytes)
	if err := readRandom(key); err != nil {
		return Descriptor{}, fmt.Errorf("secure random unavailable: %w", err)
	}

	return Descriptor{
		Name:         name,
		PSKBase64:    base64.StdEncoding.EncodeToString(key),
		ChannelIndex: secondaryChannelIndex,
		Description:  fmt.Sprintf("Tactical channel %q for ad hoc secure group use", name),
	}, nil
}
