package led

// Driver abstracts the LED strip sink.
type Driver interface {
	// Write pushes one full RGB frame to the strip. len(rgb) must be 3*N.
	Write(rgb []byte) error
	// Close releases resources.
	Close() error
}
