package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// loadList decodes the collection stored under key. A missing key or a
// malformed payload yields an empty slice: startup never fails on bad
// persisted data.
func loadList[T any](blob Blob, key string) []T {
	data, err := blob.Load(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "store: load %s: %v\n", key, err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		fmt.Fprintf(os.Stderr, "store: decode %s: %v\n", key, err)
		return nil
	}
	return list
}

func loadString(blob Blob, key string) string {
	data, err := blob.Load(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "store: load %s: %v\n", key, err)
		return ""
	}
	if len(data) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		fmt.Fprintf(os.Stderr, "store: decode %s: %v\n", key, err)
		return ""
	}
	return s
}

// save marshals v and writes it through to the blob. Write failures are
// reported and swallowed: the in-memory mutation is never rolled back.
func save(blob Blob, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "store: encode %s: %v\n", key, err)
		return
	}
	if err := blob.Save(key, data); err != nil {
		fmt.Fprintf(os.Stderr, "store: save %s: %v\n", key, err)
	}
}
