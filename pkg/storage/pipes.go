// Copyright © 2018 One Concern

package storage

import (
	"io"
	"sync"
)

const pipeBufferSize = 32 * 1024

var pipePool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, pipeBufferSize)
		return &buf
	},
}

// PipeIO copies a reader to a writer with a pooled intermediate buffer
func PipeIO(writer io.Writer, reader io.Reader) (n int64, err error) {
	pbuf := pipePool.Get().(*[]byte)
	n, err = io.CopyBuffer(writer, reader, *pbuf)
	pipePool.Put(pbuf)
	return
}
