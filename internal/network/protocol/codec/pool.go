package codec

import (
	"sync"
)

// Frame buffers are reused across reads and writes on the session loop.
var framePool = sync.Pool{
	New: func() any {
		return new([FrameSize]byte)
	},
}

// GetFrame retrieves a zeroed frame buffer from the pool
func GetFrame() *[FrameSize]byte {
	return framePool.Get().(*[FrameSize]byte)
}

// PutFrame returns a frame buffer to the pool
// The buffer is cleared so stale board data never leaks into the next frame
func PutFrame(buf *[FrameSize]byte) {
	if buf == nil {
		return
	}
	*buf = [FrameSize]byte{}
	framePool.Put(buf)
}
