package chip8

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Keypad(t *testing.T) {
	k := NewKeypad()

	_, ok := k.FirstPressed()
	assert.False(t, ok)

	assert.NoError(t, k.SetKey(0xc, true))
	assert.NoError(t, k.SetKey(0x5, true))
	assert.True(t, k.IsPressed(0xc))
	assert.False(t, k.IsPressed(0x0))

	key, ok := k.FirstPressed()
	assert.True(t, ok)
	assert.Equal(t, uint8(0x5), key)

	assert.NoError(t, k.SetKey(0x5, false))
	key, ok = k.FirstPressed()
	assert.True(t, ok)
	assert.Equal(t, uint8(0xc), key)

	t.Run("out of range keys", func(t *testing.T) {
		assert.ErrorIs(t, k.SetKey(0x10, true), ErrInvalidKey)
		// only the low nibble is looked at
		assert.True(t, k.IsPressed(0x1c))
	})

	t.Run("release", func(t *testing.T) {
		k.Release()
		_, ok := k.FirstPressed()
		assert.False(t, ok)
	})
}
