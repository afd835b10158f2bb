package keyvault

import "runtime"

// Secret is decrypted key material. Wipe it on every exit path of the call that
// obtained it; the zeroing is best-effort since earlier copies made by the runtime
// are out of reach.
type Secret []byte

// Wipe overwrites the buffer with zeros
func (s Secret) Wipe() {
	clear(s)
	runtime.KeepAlive(s)
}

// Bytes exposes the key material for the duration of the owning call
func (s Secret) Bytes() []byte {
	return s
}
