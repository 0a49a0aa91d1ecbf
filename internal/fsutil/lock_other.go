//go:build !unix

package fsutil

// Lock is a no-op on platforms without flock.
func Lock(path string) (func(), error) {
	return func() {}, nil
}
