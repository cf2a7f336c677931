// Package script runs JavaScript interaction scripts against a headless
// trimmer. It uses the goja JavaScript engine (pure Go ES5.1+
// implementation).
//
// Scripts see a global `trimmer` object:
//
//	trimmer.pointerDown("start")   // or "end"
//	trimmer.pointerMove(x)
//	trimmer.pointerUp()
//	trimmer.drag("end", x)
//	trimmer.dragToTime("start", seconds)
//	trimmer.click(x)
//	trimmer.clickMedia()
//	trimmer.setTitle("name")
//	trimmer.confirm()
//	trimmer.submit()               // returns an error message or null
//	trimmer.frames(n)
//	trimmer.advance(ms)
//	trimmer.load(seconds)
//	trimmer.state()
//	trimmer.html()
//
// plus console.log and formatTime.
package script

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"

	"github.com/chrisuehlinger/cliptrim/headless"
	"github.com/chrisuehlinger/cliptrim/trimmer"
)

// Runtime wraps a goja runtime bound to a headless harness.
type Runtime struct {
	vm      *goja.Runtime
	harness *headless.Harness
	out     io.Writer
	mu      sync.Mutex
	errors  []error
}

// NewRuntime creates a runtime that drives h and writes console output to out.
func NewRuntime(h *headless.Harness, out io.Writer) *Runtime {
	if out == nil {
		out = io.Discard
	}
	r := &Runtime{
		vm:      goja.New(),
		harness: h,
		out:     out,
	}
	r.setupConsole()
	r.setupTrimmer()
	return r
}

// VM returns the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
}

// Errors returns every error raised by executed code so far.
func (r *Runtime) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errors...)
}

// Execute runs JavaScript code and returns the result.
func (r *Runtime) Execute(code string) (result goja.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Recover from panics in the goja parser/runtime
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script execution panic: %v", p)
			r.errors = append(r.errors, err)
		}
	}()

	result, err = r.vm.RunString(code)
	if err != nil {
		r.errors = append(r.errors, err)
	}
	return result, err
}

// ExecuteScript compiles and runs a whole script file. src names the script
// in error positions.
func (r *Runtime) ExecuteScript(code, src string) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script compilation panic in %s: %v", src, p)
			r.errors = append(r.errors, err)
		}
	}()

	program, err := goja.Compile(src, code, false)
	if err != nil {
		r.errors = append(r.errors, err)
		return err
	}
	if _, err = r.vm.RunProgram(program); err != nil {
		r.errors = append(r.errors, err)
		return err
	}
	return nil
}

func (r *Runtime) setupConsole() {
	console := r.vm.NewObject()
	logFn := func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		fmt.Fprintln(r.out, strings.Join(parts, " "))
		return goja.Undefined()
	}
	console.Set("log", logFn)
	console.Set("info", logFn)
	console.Set("warn", logFn)
	console.Set("error", logFn)
	r.vm.Set("console", console)

	r.vm.Set("formatTime", func(call goja.FunctionCall) goja.Value {
		return r.vm.ToValue(trimmer.FormatTime(call.Argument(0).ToFloat()))
	})
}

func (r *Runtime) parseHandle(v goja.Value) trimmer.Handle {
	switch strings.ToLower(v.String()) {
	case "start", "left":
		return trimmer.HandleStart
	case "end", "right":
		return trimmer.HandleEnd
	}
	panic(r.vm.NewTypeError("unknown handle %q, want \"start\" or \"end\"", v.String()))
}

func (r *Runtime) setupTrimmer() {
	h := r.harness
	obj := r.vm.NewObject()

	obj.Set("pointerDown", func(call goja.FunctionCall) goja.Value {
		h.PointerDown(r.parseHandle(call.Argument(0)))
		return goja.Undefined()
	})
	obj.Set("pointerMove", func(call goja.FunctionCall) goja.Value {
		h.PointerMove(call.Argument(0).ToFloat())
		return goja.Undefined()
	})
	obj.Set("pointerUp", func(goja.FunctionCall) goja.Value {
		h.PointerUp()
		return goja.Undefined()
	})
	obj.Set("drag", func(call goja.FunctionCall) goja.Value {
		h.Drag(r.parseHandle(call.Argument(0)), call.Argument(1).ToFloat())
		return goja.Undefined()
	})
	obj.Set("dragToTime", func(call goja.FunctionCall) goja.Value {
		handle := r.parseHandle(call.Argument(0))
		h.Drag(handle, h.XForTime(call.Argument(1).ToFloat()))
		return goja.Undefined()
	})
	obj.Set("click", func(call goja.FunctionCall) goja.Value {
		h.ClickBar(call.Argument(0).ToFloat())
		return goja.Undefined()
	})
	obj.Set("clickMedia", func(goja.FunctionCall) goja.Value {
		h.ClickMedia()
		return goja.Undefined()
	})
	obj.Set("setTitle", func(call goja.FunctionCall) goja.Value {
		h.Form.SetTitle(call.Argument(0).String())
		return goja.Undefined()
	})
	obj.Set("confirm", func(goja.FunctionCall) goja.Value {
		h.Confirm()
		return goja.Undefined()
	})
	obj.Set("submit", func(goja.FunctionCall) goja.Value {
		s := h.Selector()
		if s == nil {
			return r.vm.ToValue(trimmer.ErrDestroyed.Error())
		}
		if err := s.Submit(); err != nil {
			return r.vm.ToValue(err.Error())
		}
		return goja.Null()
	})
	obj.Set("frames", func(call goja.FunctionCall) goja.Value {
		n := 1
		if len(call.Arguments) > 0 {
			n = int(call.Argument(0).ToInteger())
		}
		h.RunFrames(n)
		return goja.Undefined()
	})
	obj.Set("advance", func(call goja.FunctionCall) goja.Value {
		ms := call.Argument(0).ToFloat()
		h.Advance(time.Duration(ms * float64(time.Millisecond)))
		return goja.Undefined()
	})
	obj.Set("load", func(call goja.FunctionCall) goja.Value {
		if _, err := h.Load(call.Argument(0).ToFloat()); err != nil {
			panic(r.vm.NewGoError(err))
		}
		return goja.Undefined()
	})
	obj.Set("state", func(goja.FunctionCall) goja.Value {
		return r.vm.ToValue(r.state())
	})
	obj.Set("html", func(goja.FunctionCall) goja.Value {
		return r.vm.ToValue(h.Doc.String())
	})

	r.vm.Set("trimmer", obj)
}

func (r *Runtime) state() map[string]interface{} {
	h := r.harness
	st := map[string]interface{}{
		"currentTime": h.Player.CurrentTime(),
		"paused":      h.Player.Paused(),
		"ended":       h.Player.Ended(),
		"clock":       h.Elapsed().Milliseconds(),
		"barWidth":    h.Surface.BarBounds().Width,
		"listeners":   h.Listeners(),
	}
	if s := h.Selector(); s != nil {
		st["start"] = s.StartTime()
		st["end"] = s.EndTime()
		st["duration"] = s.Duration()
		st["minGap"] = s.MinGap()
		st["activeHandle"] = s.ActiveHandle().String()
	}
	return st
}
