package common

// WipeByteArray overwrites the buffer with zeros. Used to shorten the
// lifetime of password bytes in memory after they have been consumed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
