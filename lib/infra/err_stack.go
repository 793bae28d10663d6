package infra

import (
	"fmt"
	"io"
	"path"
	"runtime"
	"strconv"
	"strings"
)

// References:
// https://github.com/pkg/errors/blob/master/stack.go

// Frame is a single program counter inside a captured call stack.
type Frame uintptr

func (frame Frame) pc() uintptr {
	return uintptr(frame) - 1
}

func (frame Frame) file() string {
	fn := runtime.FuncForPC(frame.pc())
	if fn == nil {
		return "unknownFile"
	}
	f, _ := fn.FileLine(frame.pc())
	return f
}

func (frame Frame) line() int {
	fn := runtime.FuncForPC(frame.pc())
	if fn == nil {
		return 0
	}
	_, l := fn.FileLine(frame.pc())
	return l
}

func (frame Frame) name() string {
	fn := runtime.FuncForPC(frame.pc())
	if fn == nil {
		return "unknownFunc"
	}
	return fn.Name()
}

// Format characters:
// %s - source file
// %d - source line
// %n - function name
// %v - equivalent to %s:%d
// %+s - function name then full path, separated by \n\t
// %+v - equivalent to %+s:%d
func (frame Frame) Format(s fmt.State, verb rune) {
	switch verb {
	case 's':
		if s.Flag('+') {
			_, _ = io.WriteString(s, frame.name())
			_, _ = io.WriteString(s, "\n\t")
			_, _ = io.WriteString(s, frame.file())
		} else {
			_, _ = io.WriteString(s, path.Base(frame.file()))
		}
	case 'd':
		_, _ = io.WriteString(s, strconv.Itoa(frame.line()))
	case 'n':
		_, _ = io.WriteString(s, funcName(frame.name()))
	case 'v':
		frame.Format(s, 's')
		_, _ = io.WriteString(s, ":")
		frame.Format(s, 'd')
	}
}

func funcName(name string) string {
	i := strings.LastIndex(name, "/")
	name = name[i+1:]
	i = strings.Index(name, ".")
	return name[i+1:]
}

const maxStackDepth = 16

type errorStack struct {
	msg    string
	cause  error
	frames []Frame
}

// NewErrorStack creates a new error from msg, capturing the caller's
// stack at the point of creation.
func NewErrorStack(msg string) error {
	return &errorStack{
		msg:    msg,
		frames: callers(),
	}
}

// WrapErrorStack annotates err with the caller's stack. A nil err
// stays nil.
func WrapErrorStack(err error) error {
	if err == nil {
		return nil
	}
	return &errorStack{
		cause:  err,
		frames: callers(),
	}
}

// WrapErrorStackWithMessage annotates err with msg and the caller's
// stack. A nil err stays nil.
func WrapErrorStackWithMessage(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &errorStack{
		msg:    msg,
		cause:  err,
		frames: callers(),
	}
}

func callers() []Frame {
	var pcs [maxStackDepth]uintptr
	// Skip runtime.Callers, this function and the exported constructor.
	n := runtime.Callers(3, pcs[:])
	frames := make([]Frame, 0, n)
	for i := 0; i < n; i++ {
		frames = append(frames, Frame(pcs[i]))
	}
	return frames
}

func (e *errorStack) Error() string {
	switch {
	case e.msg != "" && e.cause != nil:
		return e.msg + ": " + e.cause.Error()
	case e.cause != nil:
		return e.cause.Error()
	default:
		return e.msg
	}
}

func (e *errorStack) Unwrap() error {
	return e.cause
}

// Format renders the message for %s and %v, appending one frame per
// line for %+v.
func (e *errorStack) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		_, _ = io.WriteString(s, e.Error())
		if s.Flag('+') {
			for _, frame := range e.frames {
				_, _ = io.WriteString(s, "\n")
				frame.Format(s, 'v')
			}
		}
	case 's':
		_, _ = io.WriteString(s, e.Error())
	}
}
