package usecase

import (
	"hash/fnv"
	"sync"
)

const lockStripes = 64

// keyedMutex provides mutual exclusion per string key using a fixed set of
// striped locks. Distinct keys may share a stripe; that only costs contention,
// never correctness.
type keyedMutex struct {
	stripes [lockStripes]sync.Mutex
}

func (k *keyedMutex) lock(key string) (unlock func()) {
	h := fnv.New32a()
	h.Write([]byte(key))
	m := &k.stripes[h.Sum32()%lockStripes]
	m.Lock()
	return m.Unlock
}
