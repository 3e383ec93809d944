package attr

const (
	// Default maximum record size (1MB)
	defaultMaxSize = 1024 * 1024
)

// config holds decoder configuration.
type config struct {
	maxSize int
}

// Option configures a Decoder.
type Option func(*config)

// MaxSize sets the largest record, in wire bytes, the decoder will buffer.
// Larger records make Decode return ErrTooLarge.
//
// Default: 1MB (1048576 bytes)
func MaxSize(n int) Option {
	return func(c *config) {
		c.maxSize = n
	}
}
