package util

import "sync"

// ChunkSize is the fixed transfer unit: every socket read or write
// moves at most this many bytes.
const ChunkSize = 1024

// chunkPool provides reusable transfer buffers so a long Send/Receive
// loop does not allocate per call.
var chunkPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, ChunkSize)
		return &buf
	},
}

// GetChunk retrieves a ChunkSize buffer from the pool.  Callers must
// return it with [PutChunk] when finished.
func GetChunk() *[]byte {
	return chunkPool.Get().(*[]byte)
}

// PutChunk returns a buffer to the pool for reuse.  Buffers of the
// wrong size are dropped.
func PutChunk(buf *[]byte) {
	if buf == nil || len(*buf) != ChunkSize {
		return
	}
	chunkPool.Put(buf)
}
