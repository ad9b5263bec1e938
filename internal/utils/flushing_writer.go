package utils

import (
	"io"
	"sync"
)

type flusher interface {
	Flush() error
}

// FlushingWriter forwards writes and flushes buffered destinations after each one,
// so report lines appear before the next blocking git call or prompt.
type FlushingWriter struct {
	writer io.Writer
	mutex  sync.Mutex
}

// NewFlushingWriter wraps writer. Nil writers stay nil and already wrapped writers are returned unchanged.
func NewFlushingWriter(writer io.Writer) io.Writer {
	switch typed := writer.(type) {
	case nil:
		return nil
	case *FlushingWriter:
		return typed
	default:
		return &FlushingWriter{writer: writer}
	}
}

// Write delegates to the underlying writer and flushes it when supported.
func (flushingWriter *FlushingWriter) Write(data []byte) (int, error) {
	if flushingWriter == nil || flushingWriter.writer == nil {
		return 0, nil
	}

	flushingWriter.mutex.Lock()
	defer flushingWriter.mutex.Unlock()

	bytesWritten, writeError := flushingWriter.writer.Write(data)
	if writeError != nil {
		return bytesWritten, writeError
	}

	if flushable, supportsFlush := flushingWriter.writer.(flusher); supportsFlush {
		return bytesWritten, flushable.Flush()
	}
	return bytesWritten, nil
}
