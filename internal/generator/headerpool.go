package generator

import "sync"

// headerPools reuses one contiguous header slab per batch size across
// sender iterations instead of allocating batchSize fresh header slices on
// every pass. This is the same sync.Pool-based reuse the teacher repo
// applied to its per-call receive buffer (a 9000-byte mDNS datagram
// buffer); here it backs the sender's hot path instead, where the
// allocation is batchSize*headerLen bytes of IP+UDP header rather than one
// receive buffer.
var headerPools sync.Map // map[int]*sync.Pool, keyed by batch size

func getHeaderSlab(batchSize int) []byte {
	v, _ := headerPools.LoadOrStore(batchSize, &sync.Pool{
		New: func() any {
			buf := make([]byte, batchSize*headerLen)
			return &buf
		},
	})
	pool := v.(*sync.Pool)
	return *(pool.Get().(*[]byte))
}

func putHeaderSlab(batchSize int, buf []byte) {
	v, ok := headerPools.Load(batchSize)
	if !ok {
		return
	}
	pool := v.(*sync.Pool)
	pool.Put(&buf)
}
