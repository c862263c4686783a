package state

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	raw := bytes.Repeat([]byte{0x01, 0x02, 0x03, 0x00}, 256)

	encoded, err := Encode(raw)
	assert.NoError(t, err)
	assert.NotEmpty(t, encoded)

	decoded, err := Decode(encoded)
	assert.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not brotli data"))
	assert.Error(t, err)
}
