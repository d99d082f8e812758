package domain

const gzipMinLen = 10

// IsGzipped reports whether b starts with a gzip header using the deflate method.
// Both magic bytes must match.
func IsGzipped(b []byte) bool {
	if len(b) < gzipMinLen {
		return false
	}
	return b[0] == 0x1f && b[1] == 0x8b && b[2] == 0x08
}
