package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/blockbyte/engine/internal/component"
	"github.com/blockbyte/engine/internal/core/ecs"
	"github.com/blockbyte/engine/internal/core/event"
	"github.com/blockbyte/engine/internal/grid"
)

func (e *Engine) install() {
	for name, fn := range map[string]lua.LGFunction{
		"new_entity":     e.newEntity,
		"destroy_entity": e.destroyEntity,
		"is_valid":       e.isValid,
		"set_transform":  e.setTransform,
		"get_transform":  e.getTransform,
		"add_box":        e.addBox,
		"add_sprite":     e.addSprite,
		"add_input":      e.addInput,
		"add_grid":       e.addGrid,
		"stamp":          e.stamp,
		"count":          e.count,
		"import_level":   e.importLevel,
		"export_level":   e.exportLevel,
		"on_trigger":     e.onTrigger,
		"quit":           e.quit,
		"log":            e.logInfo,
	} {
		e.vm.SetGlobal(name, e.vm.NewFunction(fn))
	}
}

// Entity handles travel as Lua numbers. Indices stay below MaxEntities so
// the handle fits a float64 mantissa.
func pushEntity(L *lua.LState, id ecs.EntityID) {
	L.Push(lua.LNumber(float64(id)))
}

func checkEntity(L *lua.LState, n int) ecs.EntityID {
	return ecs.EntityID(uint64(L.CheckNumber(n)))
}

// fail pushes the Lua convention for a failed call: nil, message.
func fail(L *lua.LState, err error) int {
	L.Push(lua.LNil)
	L.Push(lua.LString(err.Error()))
	return 2
}

// new_entity([x, y]) -> id | nil, err
func (e *Engine) newEntity(L *lua.LState) int {
	x := float64(L.OptNumber(1, 0))
	y := float64(L.OptNumber(2, 0))
	id, err := e.scene.NewEntity(x, y)
	if err != nil {
		return fail(L, err)
	}
	pushEntity(L, id)
	return 1
}

// destroy_entity(id) -> bool. Destruction is deferred to the end of the
// tick so running views stay consistent.
func (e *Engine) destroyEntity(L *lua.LState) int {
	id := checkEntity(L, 1)
	if !e.scene.World.IsValid(id) {
		L.Push(lua.LFalse)
		return 1
	}
	e.scene.World.MarkForDestruction(id)
	L.Push(lua.LTrue)
	return 1
}

func (e *Engine) isValid(L *lua.LState) int {
	L.Push(lua.LBool(e.scene.World.IsValid(checkEntity(L, 1))))
	return 1
}

// set_transform(id, x, y) -> bool. Moves the body too when there is one.
func (e *Engine) setTransform(L *lua.LState) int {
	id := checkEntity(L, 1)
	x := float64(L.CheckNumber(2))
	y := float64(L.CheckNumber(3))
	L.Push(lua.LBool(e.scene.SetTransform(id, x, y)))
	return 1
}

// get_transform(id) -> x, y | nil
func (e *Engine) getTransform(L *lua.LState) int {
	t := ecs.Get[component.Transform](e.scene.World, checkEntity(L, 1))
	if t == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(t.X))
	L.Push(lua.LNumber(t.Y))
	return 2
}

// add_box(id, x, y, w, h, static, trigger) -> bool
// x and y in pixels, w and h in board units.
func (e *Engine) addBox(L *lua.LState) int {
	id := checkEntity(L, 1)
	x := float64(L.CheckNumber(2))
	y := float64(L.CheckNumber(3))
	w := float64(L.OptNumber(4, 1))
	h := float64(L.OptNumber(5, 1))
	static := L.ToBool(6)
	trigger := L.ToBool(7)
	if !e.scene.World.IsValid(id) {
		L.Push(lua.LFalse)
		return 1
	}
	if t := ecs.Get[component.Transform](e.scene.World, id); t != nil {
		t.X, t.Y = x, y
	}
	L.Push(lua.LBool(e.scene.AddBox(id, x, y, w, h, static, trigger) != nil))
	return 1
}

// add_sprite(id, path, w, h) -> true | nil, err
func (e *Engine) addSprite(L *lua.LState) int {
	id := checkEntity(L, 1)
	path := L.CheckString(2)
	w := float64(L.OptNumber(3, 1))
	h := float64(L.OptNumber(4, 1))
	if _, err := e.scene.AddSprite(id, path, w, h); err != nil {
		return fail(L, err)
	}
	L.Push(lua.LTrue)
	return 1
}

// add_input(id, [speed, jump]) -> bool
func (e *Engine) addInput(L *lua.LState) int {
	in := e.scene.AddInput(checkEntity(L, 1))
	if in == nil {
		L.Push(lua.LFalse)
		return 1
	}
	if v := L.OptNumber(2, 0); v != 0 {
		in.Speed = float64(v)
	}
	if v := L.OptNumber(3, 0); v != 0 {
		in.JumpSpeed = float64(v)
	}
	L.Push(lua.LTrue)
	return 1
}

// add_grid(id, [rows, cols]) -> bool. Omitted dimensions come from the
// scene's grid defaults.
func (e *Engine) addGrid(L *lua.LState) int {
	rows := L.OptInt(2, e.scene.Grid.Rows)
	cols := L.OptInt(3, e.scene.Grid.Cols)
	if rows <= 0 || cols <= 0 {
		L.ArgError(2, "grid dimensions must be positive")
		return 0
	}
	if !grid.FitsCells(rows, cols) {
		L.ArgError(2, fmt.Sprintf("grid %dx%d exceeds %d cells", rows, cols, grid.MaxCells))
		return 0
	}
	L.Push(lua.LBool(e.scene.AddGrid(checkEntity(L, 1), rows, cols) != nil))
	return 1
}

func (e *Engine) gridOf(L *lua.LState) *grid.Grid {
	gs := ecs.Get[component.GridSimulation](e.scene.World, checkEntity(L, 1))
	if gs == nil || gs.Grid == nil {
		return nil
	}
	return gs.Grid
}

// stamp(id, col, row, [material]) -> cells written
// Without a material the grid's current brush is used.
func (e *Engine) stamp(L *lua.LState) int {
	g := e.gridOf(L)
	col := L.CheckInt(2)
	row := L.CheckInt(3)
	if g == nil {
		L.Push(lua.LNumber(0))
		return 1
	}
	m := g.Brush
	if name := L.OptString(4, ""); name != "" {
		var err error
		if m, err = grid.ParseMaterial(name); err != nil {
			L.ArgError(4, err.Error())
			return 0
		}
	}
	L.Push(lua.LNumber(g.Stamp(col, row, m, e.rng)))
	return 1
}

// count(id, material) -> cells of that material
func (e *Engine) count(L *lua.LState) int {
	g := e.gridOf(L)
	m, err := grid.ParseMaterial(L.CheckString(2))
	if err != nil {
		L.ArgError(2, err.Error())
		return 0
	}
	if g == nil {
		L.Push(lua.LNumber(0))
		return 1
	}
	L.Push(lua.LNumber(g.Count(m)))
	return 1
}

// import_level(path) -> sheet id | nil, err
func (e *Engine) importLevel(L *lua.LState) int {
	id, err := e.scene.ImportLevel(L.CheckString(1))
	if err != nil {
		return fail(L, err)
	}
	pushEntity(L, id)
	return 1
}

// export_level(sheet id, path) -> true | nil, err
func (e *Engine) exportLevel(L *lua.LState) int {
	if err := e.scene.ExportLevel(checkEntity(L, 1), L.CheckString(2)); err != nil {
		return fail(L, err)
	}
	L.Push(lua.LTrue)
	return 1
}

// on_trigger(id, fn(self, other)) -> bool
func (e *Engine) onTrigger(L *lua.LState) int {
	id := checkEntity(L, 1)
	fn := L.CheckFunction(2)
	c := ecs.Get[component.Collider](e.scene.World, id)
	if c == nil || !c.IsTrigger {
		L.Push(lua.LFalse)
		return 1
	}
	c.OnTrigger = func(self, other ecs.EntityID) {
		if err := e.vm.CallByParam(lua.P{
			Fn:      fn,
			NRet:    0,
			Protect: true,
		}, lua.LNumber(float64(self)), lua.LNumber(float64(other))); err != nil {
			e.log.Error("lua on_trigger error", zap.Uint64("entity", uint64(self)), zap.Error(err))
		}
	}
	L.Push(lua.LTrue)
	return 1
}

// quit() asks the loop to stop after the next event dispatch.
func (e *Engine) quit(L *lua.LState) int {
	if e.scene.Bus != nil {
		event.Emit(e.scene.Bus, event.QuitRequested{})
	}
	return 0
}

func (e *Engine) logInfo(L *lua.LState) int {
	e.log.Info("script", zap.String("msg", L.CheckString(1)))
	return 0
}
