package errors

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// maxStackDepth 记录的最大调用层数。
const maxStackDepth = 32

// stack 创建错误时的调用点，输出时才解析为函数与文件行号。
type stack []uintptr

// callers 跳过 runtime.Callers、callers 本身与错误构造函数。
func callers() *stack {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(3, pcs)
	st := stack(pcs[:n])
	return &st
}

func (s *stack) frames() []runtime.Frame {
	if s == nil || len(*s) == 0 {
		return nil
	}

	out := make([]runtime.Frame, 0, len(*s))
	it := runtime.CallersFrames(*s)
	for {
		frame, more := it.Next()
		out = append(out, frame)
		if !more {
			return out
		}
	}
}

// Format 只响应 %+v，每帧输出为 "函数名\n\t文件:行号"。
func (s *stack) Format(st fmt.State, verb rune) {
	if verb != 'v' || !st.Flag('+') {
		return
	}
	for _, f := range s.frames() {
		fmt.Fprintf(st, "\n%s\n\t%s:%d", f.Function, f.File, f.Line)
	}
}

// lines 用于 %#v 的 JSON 输出，格式为 "pkg.Func file.go:42"。
func (s *stack) lines() []string {
	frames := s.frames()
	if len(frames) == 0 {
		return nil
	}

	out := make([]string, 0, len(frames))
	for _, f := range frames {
		out = append(out, fmt.Sprintf("%s %s:%d", shortFuncName(f.Function), f.File, f.Line))
	}
	return out
}

// shortFuncName 去掉函数名中的导入路径，保留 "包名.函数名"。
func shortFuncName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// writeString 忽略写入错误，fmt.State 的写入错误由 fmt 自行处理。
func writeString(w io.Writer, s string) {
	_, _ = io.WriteString(w, s)
}
