// Package cachestrategy defines cache eviction strategy interfaces.
package cachestrategy

// Strategy stores cached objects and decides what to evict.
type Strategy interface {
	Get(key string) ([]byte, bool)
	Add(key string, value []byte)
	Remove(key string)
	Len() int
}
