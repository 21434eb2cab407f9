package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSinkWritesLinesInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "access.log")
	s := NewSink(path, 16)
	s.Write("first")
	s.Write("second")
	s.Close()

	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "first\nsecond\n", string(bs))
	require.Equal(t, int64(0), s.Failed())
}

func TestSinkAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "performance.log")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0666))

	s := NewSink(path, 0)
	s.Write("new")
	s.Close()

	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "old\nnew\n", string(bs))
}

func TestSinkWriteAfterCloseIsDropped(t *testing.T) {
	s := NewSink(filepath.Join(t.TempDir(), "a.log"), 1)
	s.Close()
	s.Close()
	s.Write("late")
	require.Equal(t, int64(1), s.Dropped())
}

func TestPrintlnWritesDailyFile(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	console = &out
	t.Cleanup(func() {
		console = os.Stdout
		mtx.Lock()
		if currentLogFile != nil {
			_ = currentLogFile.Close()
		}
		currentLogFile = nil
		currentLogFileName = ""
		loggerObject = nil
		logsPath = ""
		errorLogFileName = ""
		mtx.Unlock()
	})

	old := filepath.Join(dir, time.Now().AddDate(0, 0, -LogDepthDays-2).Format("2006-01-02")+".log")
	require.NoError(t, os.WriteFile(old, []byte("x"), 0666))

	Init(dir)
	SetErrorLog("error.log")
	Println("[app]", "hello")
	ErrorWithStack("[test]", errors.New("boom"))

	require.Contains(t, out.String(), "[app] hello")
	require.Contains(t, out.String(), "boom")

	bs, err := os.ReadFile(filepath.Join(dir, time.Now().Format("2006-01-02")+".log"))
	require.NoError(t, err)
	require.True(t, strings.Contains(string(bs), "[app] hello"))

	bs, err = os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	require.Contains(t, string(bs), "[test]: boom")
	require.Contains(t, string(bs), "goroutine")

	_, err = os.Stat(old)
	require.True(t, os.IsNotExist(err))
}
