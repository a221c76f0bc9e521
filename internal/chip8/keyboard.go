package chip8

const keyCount = 16

// Keyboard is the 16-key hex keypad. The host owns the key states,
// opcodes only read them.
type Keyboard interface {
	SetKey(key uint8, pressed bool) error
	IsPressed(key uint8) bool
	// FirstPressed returns the lowest pressed key, if any.
	FirstPressed() (uint8, bool)
	Release()
}

type Keypad struct {
	keys [keyCount]bool
}

func NewKeypad() *Keypad {
	return &Keypad{}
}

func (k *Keypad) SetKey(key uint8, pressed bool) error {
	if key >= keyCount {
		return ErrInvalidKey
	}
	k.keys[key] = pressed
	return nil
}

// IsPressed only looks at the low nibble of key.
func (k *Keypad) IsPressed(key uint8) bool {
	return k.keys[key&0xF]
}

func (k *Keypad) FirstPressed() (uint8, bool) {
	for i, pressed := range k.keys {
		if pressed {
			return uint8(i), true
		}
	}
	return 0, false
}

// Release marks all keys as not pressed.
func (k *Keypad) Release() {
	k.keys = [keyCount]bool{}
}
