//go:build !unix && !windows

package vmem

// Platforms without a reserve/commit split get the whole range up front.

func osPageSize() int {
	return 4096
}

func osReserve(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func osCommit([]byte) error { return nil }

func osRelease([]byte) error { return nil }

func osAdvise([]byte, AccessPattern) error { return nil }
