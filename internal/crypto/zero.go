package crypto

// Zero overwrites b with zeros. Use it on derived keys and master password
// bytes as soon as a request no longer needs them.
func Zero(b []byte) {
	clear(b)
}
