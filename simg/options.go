package simg

// config holds the settings used by Wrap.
type config struct {
	// destinationAddress is written to the DADDR field
	destinationAddress uint32

	// version is written to the VERSION field
	version uint16

	// skipChecksum leaves the CRC32 field zero
	skipChecksum bool
}

// defaultConfig returns the default Wrap configuration.
func defaultConfig() config {
	return config{
		version: DefaultVersion,
	}
}

// Option is a functional option for configuring Wrap.
type Option func(*config)

// WithDestinationAddress sets the load address recorded in the header.
//
// Example:
//
//	img := simg.Wrap(payload, simg.WithDestinationAddress(0x8000))
func WithDestinationAddress(addr uint32) Option {
	return func(c *config) {
		c.destinationAddress = addr
	}
}

// WithoutChecksum leaves the CRC32 field zero.
func WithoutChecksum() Option {
	return func(c *config) {
		c.skipChecksum = true
	}
}

// WithChecksum enables or disables checksum computation. Default is enabled.
func WithChecksum(enabled bool) Option {
	return func(c *config) {
		c.skipChecksum = !enabled
	}
}

// WithVersion sets the content version recorded in the header.
func WithVersion(version uint16) Option {
	return func(c *config) {
		c.version = version
	}
}
