package ports

// ContentCache persists compiled output keyed by namespace and source digests.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ContentCache interface {
	// NamespacePath returns root/namespace, creating the directory when root is writable.
	NamespacePath(root, namespace string) (string, error)

	// EntryPath returns the entry path for source under namespacePath.
	EntryPath(namespacePath string, source []byte) string

	// Read returns the decompressed entry. Any failure is reported as a miss.
	Read(entryPath string) ([]byte, bool)

	// Write compresses text and stores it at entryPath.
	Write(entryPath string, text []byte) error
}
