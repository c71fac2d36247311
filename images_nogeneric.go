//go:build nogeneric

package oledgen

// DefaultImageDecoder returns nil, this build only supports PBM frames.
func DefaultImageDecoder() ImageDecoder {
	return nil
}
