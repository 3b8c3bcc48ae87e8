// Package batch splits slices into fixed-size chunks for bulk writes.
package batch

// DefaultSize is used when a non-positive size is given.
const DefaultSize = 500

// SizeFor returns the number of rows per multi-row statement: size, or
// DefaultSize when non-positive, capped so that rows * columns stays within
// maxParams bind parameters.
func SizeFor(size, columns, maxParams int) int {
	if size <= 0 {
		size = DefaultSize
	}
	if columns <= 0 {
		return size
	}
	return max(1, min(size, maxParams/columns))
}

// Process splits items into batches of size and processes each via fn.
// It stops at the first error and returns the count processed so far.
func Process[T any](items []T, size int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if size <= 0 {
		size = DefaultSize
	}

	total := 0
	for i := 0; i < len(items); i += size {
		end := min(i+size, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
