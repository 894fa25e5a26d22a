package cache

import "fmt"

// ResultKey builds the cache key for a stateless quiz result. The key
// pins everything that shapes the output: document fingerprint,
// effective page range, and per-kind targets.
func ResultKey(fingerprint string, start, end, mcq, tf, fib int) string {
	return fmt.Sprintf("quiz:result:%s:%d-%d:%d:%d:%d", fingerprint, start, end, mcq, tf, fib)
}
