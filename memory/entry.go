package memory

// Entry is a key-value pair held by a Store.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
