package ports

// Port: a durable local key-value slot (the cross-reload shared resource).
// Implementations guarantee last-writer-wins semantics only.
type KeyValueSlot interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) ([]byte, bool, error)
	// Put stores a value, replacing any previous one.
	Put(key string, value []byte) error
	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error
}
