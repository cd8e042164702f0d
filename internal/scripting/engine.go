package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for AI hooks.
// Single-goroutine access only (scheduler pass).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads the scripts found under
// scriptsDir/core and scriptsDir/ai. Missing directories are skipped.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	for _, sub := range []string{"core", "ai"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			e.vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// NewEngineFromSource creates an engine running src instead of files.
func NewEngineFromSource(src string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.vm.DoString(src); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load lua source: %w", err)
	}
	return e, nil
}

func newEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Close releases the VM. A nil engine is ignored.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.vm.Close()
}

// HasFunc reports whether a global Lua function is defined.
func (e *Engine) HasFunc(name string) bool {
	if e == nil {
		return false
	}
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// IdleContext is the state handed to idle_action.
type IdleContext struct {
	EntityID  uint64
	X, Y      int32
	Health    uint16
	MaxHealth uint16
	Energy    float32
	Speed     float32
}

// IdleKind is what idle_action asked for.
type IdleKind uint8

const (
	IdleStep IdleKind = iota + 1
	IdleWait
)

// IdleDecision is the parsed result of idle_action. DX/DY are only set for
// IdleStep.
type IdleDecision struct {
	Kind   IdleKind
	DX, DY int32
}

// IdleAction calls Lua idle_action(ctx). ok is false when the hook is
// missing, fails, returns nil, or returns something unrecognised; the caller
// then picks its own fallback.
func (e *Engine) IdleAction(ctx IdleContext) (IdleDecision, bool) {
	if e == nil {
		return IdleDecision{}, false
	}
	fn := e.vm.GetGlobal("idle_action")
	if fn == lua.LNil {
		return IdleDecision{}, false
	}

	t := e.vm.NewTable()
	t.RawSetString("entity_id", lua.LNumber(ctx.EntityID))
	t.RawSetString("x", lua.LNumber(ctx.X))
	t.RawSetString("y", lua.LNumber(ctx.Y))
	t.RawSetString("health", lua.LNumber(ctx.Health))
	t.RawSetString("max_health", lua.LNumber(ctx.MaxHealth))
	t.RawSetString("energy", lua.LNumber(ctx.Energy))
	t.RawSetString("speed", lua.LNumber(ctx.Speed))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua idle_action error", zap.Error(err), zap.Uint64("entity", ctx.EntityID))
		return IdleDecision{}, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return IdleDecision{}, false
	}

	switch lStr(rt, "type") {
	case "step":
		dx, dy := lInt(rt, "dx"), lInt(rt, "dy")
		// one cardinal cell only
		if abs(dx)+abs(dy) != 1 {
			e.log.Warn("lua idle_action returned invalid step",
				zap.Int("dx", dx), zap.Int("dy", dy), zap.Uint64("entity", ctx.EntityID))
			return IdleDecision{}, false
		}
		return IdleDecision{Kind: IdleStep, DX: int32(dx), DY: int32(dy)}, true
	case "wait":
		return IdleDecision{Kind: IdleWait}, true
	default:
		return IdleDecision{}, false
	}
}

// lInt reads an integer field from a Lua table.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

// lStr reads a string field from a Lua table.
func lStr(t *lua.LTable, key string) string {
	return lua.LVAsString(t.RawGetString(key))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
