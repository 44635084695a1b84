package utilities

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Logger é a capacidade de log injetada no store, no service e nos handlers.
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Error(err error, context string)
}

// StdLogger implementa Logger com três log.Logger de prefixos coloridos.
type StdLogger struct {
	info  *log.Logger
	err   *log.Logger
	debug *log.Logger

	debugEnabled bool
}

const logFlags = log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile

// NewLogger cria um logger que escreve info/debug em out e erros em errOut.
func NewLogger(out, errOut io.Writer, debug bool) *StdLogger {
	return &StdLogger{
		info:         log.New(out, "\033[32m[INFO]\033[0m ", logFlags),
		err:          log.New(errOut, "\033[31m[ERROR]\033[0m ", logFlags),
		debug:        log.New(out, "\033[36m[DEBUG]\033[0m ", logFlags),
		debugEnabled: debug,
	}
}

// Discard retorna um logger que descarta tudo (útil nos testes).
func Discard() *StdLogger {
	return NewLogger(io.Discard, io.Discard, false)
}

// Output usa calldepth 2 para que Lshortfile aponte para quem chamou o método.
func (l *StdLogger) Debug(format string, v ...interface{}) {
	if !l.debugEnabled {
		return
	}
	l.debug.Output(2, fmt.Sprintf(format, v...))
}

func (l *StdLogger) Info(format string, v ...interface{}) {
	l.info.Output(2, fmt.Sprintf(format, v...))
}

func (l *StdLogger) Error(err error, context string) {
	l.err.Output(2, fmt.Sprintf("%s: %v", context, err))
}

// Request registra informações sobre a requisição HTTP
func (l *StdLogger) Request(requestID, method, path, remoteAddr string, status int, duration time.Duration) {
	l.info.Output(2, fmt.Sprintf("[%s] %s %s %s %d %v", requestID, method, path, remoteAddr, status, duration))
}

var std = NewLogger(os.Stdout, os.Stderr, true)

// InitLogger inicializa o logger padrão
func InitLogger(debug bool) {
	log.SetFlags(logFlags)
	std = NewLogger(os.Stdout, os.Stderr, debug)
}

// Default retorna o logger padrão do processo.
func Default() *StdLogger {
	return std
}

// LogError registra erros com contexto
func LogError(err error, context string) {
	std.Error(err, context)
}

// LogDebug registra informações de debug
func LogDebug(format string, v ...interface{}) {
	std.Debug(format, v...)
}

// LogInfo registra informações gerais
func LogInfo(format string, v ...interface{}) {
	std.Info(format, v...)
}
