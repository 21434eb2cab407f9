package logger

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

const DefaultSinkBufferSize = 1024

// Sink appends lines to a file from a single goroutine. Write never blocks:
// when the buffer is full the line is dropped.
type Sink struct {
	filePath string
	ch       chan string
	dropped  atomic.Int64
	failed   atomic.Int64
	wg       sync.WaitGroup
	once     sync.Once
}

func NewSink(filePath string, bufferSize int) *Sink {
	if bufferSize < 1 {
		bufferSize = DefaultSinkBufferSize
	}
	var c Sink
	c.filePath = filePath
	c.ch = make(chan string, bufferSize)
	c.wg.Add(1)
	go c.thWork()
	return &c
}

func (c *Sink) FilePath() string {
	return c.filePath
}

// Write queues one line. A trailing newline is added by the sink.
func (c *Sink) Write(line string) {
	defer func() {
		// write after Close
		if recover() != nil {
			c.dropped.Add(1)
		}
	}()
	select {
	case c.ch <- line:
	default:
		c.dropped.Add(1)
	}
}

func (c *Sink) Dropped() int64 {
	return c.dropped.Load()
}

func (c *Sink) Failed() int64 {
	return c.failed.Load()
}

// Close flushes queued lines and stops the writer goroutine.
func (c *Sink) Close() {
	c.once.Do(func() {
		close(c.ch)
	})
	c.wg.Wait()
}

func (c *Sink) thWork() {
	defer c.wg.Done()

	var f *os.File
	defer func() {
		if f != nil {
			_ = f.Close()
		}
	}()

	for line := range c.ch {
		if f == nil {
			var err error
			_ = os.MkdirAll(filepath.Dir(c.filePath), 0777)
			f, err = os.OpenFile(c.filePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
			if err != nil {
				f = nil
				c.failed.Add(1)
				continue
			}
		}
		_, err := f.WriteString(line + "\n")
		if err != nil {
			c.failed.Add(1)
			_ = f.Close()
			f = nil
		}
	}
}
