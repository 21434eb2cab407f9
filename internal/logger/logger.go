package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

var mtx sync.Mutex
var logsPath string
var loggerObject *log.Logger
var currentLogFileName string
var currentLogFile *os.File
var errorLogFileName string

var LogDepthDays = 30

var console io.Writer = os.Stdout
var errorTag = color.New(color.FgRed).SprintFunc()

func CurrentExePath() string {
	dir, _ := filepath.Abs(filepath.Dir(os.Args[0]))
	return dir
}

func Init(path string) {
	mtx.Lock()
	defer mtx.Unlock()
	logsPath = path
	err := os.MkdirAll(path, 0777)
	if err != nil {
		fmt.Println("Can not create log directory")
	}
}

// SetErrorLog sets the file that receives ErrorWithStack records.
func SetErrorLog(fileName string) {
	mtx.Lock()
	errorLogFileName = fileName
	mtx.Unlock()
}

func checkLogFile() {
	if len(logsPath) == 0 {
		return
	}

	var err error
	logFile := filepath.Join(logsPath, time.Now().Format("2006-01-02")+".log")
	if logFile == currentLogFileName {
		return
	}

	if currentLogFile != nil {
		_ = currentLogFile.Close()
	}
	loggerObject = nil

	currentLogFile, err = os.OpenFile(logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		fmt.Println("error opening file: ", err)
		currentLogFile = nil
		return
	}

	loggerObject = log.New(currentLogFile, "", log.Ldate|log.Lmicroseconds)
	currentLogFileName = logFile

	removeOldFiles()
}

func removeOldFiles() {
	entries, err := os.ReadDir(logsPath)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		t, err := time.Parse("2006-01-02", name)
		if err != nil {
			continue
		}
		if time.Since(t) > time.Duration(LogDepthDays*24)*time.Hour {
			_ = os.Remove(filepath.Join(logsPath, e.Name()))
		}
	}
}

func Println(v ...interface{}) {
	mtx.Lock()
	defer mtx.Unlock()
	checkLogFile()
	if loggerObject != nil {
		loggerObject.Println(v...)
	}
	fmt.Fprint(console, time.Now().UTC().Format("2006-01-02 15:04:05.999"), " ")
	fmt.Fprintln(console, v...)
}

func Error(v ...interface{}) {
	mtx.Lock()
	defer mtx.Unlock()
	checkLogFile()
	if loggerObject != nil {
		loggerObject.Println(append([]interface{}{"[error]"}, v...)...)
	}
	fmt.Fprint(console, time.Now().UTC().Format("2006-01-02 15:04:05.999"), " ", errorTag("[error]"), " ")
	fmt.Fprintln(console, v...)
}

// ErrorWithStack logs err through Error and appends it, together with the
// current goroutine stack, to the error log.
func ErrorWithStack(context string, err error) {
	Error(context, err)

	mtx.Lock()
	defer mtx.Unlock()
	if len(logsPath) == 0 || len(errorLogFileName) == 0 {
		return
	}
	f, openErr := os.OpenFile(filepath.Join(logsPath, errorLogFileName), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
	if openErr != nil {
		return
	}
	defer f.Close()
	_, _ = fmt.Fprintf(f, "[%s] %s: %v\n%s\n", time.Now().UTC().Format(time.RFC3339Nano), context, err, debug.Stack())
}
