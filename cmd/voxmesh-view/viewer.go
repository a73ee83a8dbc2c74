package main

import (
	"context"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"voxmesh/internal/glsink"
	"voxmesh/internal/graphics"
	"voxmesh/internal/registry"
	"voxmesh/internal/store"
	"voxmesh/internal/world"
)

type viewer struct {
	ctx     context.Context
	window  *glfw.Window
	world   *world.World
	sink    *glsink.Sink
	columns *store.Store
	blocks  *registry.Registry
	camera  *graphics.Camera
	radius  int
	loaded  []world.ColumnCoord

	paused       bool
	reloadWanted bool
}

// reload adds every stored column within the view radius of the origin to
// the world, replacing what was loaded before. Columns that disappeared from
// the store are unloaded.
func (v *viewer) reload() error {
	start := time.Now()

	coords, err := v.columns.List(v.ctx)
	if err != nil {
		return errors.New("could not list columns").Wrap(err)
	}

	keep := make(map[world.ColumnCoord]bool, len(coords))
	limit := v.radius * world.ColumnSizeX
	for _, c := range coords {
		if abs(c.X) > limit || abs(c.Z) > limit {
			continue
		}

		col, err := v.columns.Get(v.ctx, c.X, c.Z, v.blocks)
		if err != nil {
			logs.Warn(errors.New("skipping column").Wrap(err))
			continue
		}
		v.world.AddColumn(c.X, c.Z, col)
		keep[c] = true
	}

	for _, c := range v.loaded {
		if !keep[c] {
			v.world.RemoveColumn(c.X, c.Z)
		}
	}
	v.loaded = v.loaded[:0]
	for c := range keep {
		v.loaded = append(v.loaded, c)
	}

	logs.WithTag("columns", len(keep)).
		WithTag("duration", time.Since(start)).
		Info("columns loaded")
	return nil
}

func (v *viewer) setupInputHandlers() {
	v.window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if !v.paused {
			v.camera.HandleMouseMovement(xpos, ypos)
		}
	})

	v.window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		v.camera.SetAspect(width, height)
	})

	v.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyR:
			v.reloadWanted = true
		case glfw.KeyEscape:
			v.paused = !v.paused
			if v.paused {
				w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
			} else {
				w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
				v.camera.ResetMouse()
			}
		case glfw.KeyQ:
			w.SetShouldClose(true)
		}
	})
}

func (v *viewer) run() {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.ClearColor(0.53, 0.72, 0.9, 1.0)

	width, height := v.window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(width), int32(height))
	v.camera.SetAspect(width, height)

	frames := 0
	lastFPSCheckTime := time.Now()
	lastTime := time.Now()

	for !v.window.ShouldClose() {
		if v.ctx.Err() != nil {
			return
		}

		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.reloadWanted {
			v.reloadWanted = false
			if err := v.reload(); err != nil {
				logs.Warn(err)
			}
		}

		if !v.paused {
			v.move(dt)
		}

		if built := v.world.Update(); built > 0 {
			logs.WithTag("sections", built).
				WithTag("meshes", v.world.MeshCount()).
				Debug("sections meshed")
		}

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		drawn := v.sink.Draw(v.camera.ViewProjection())

		v.window.SwapBuffers()
		glfw.PollEvents()
		frames++

		if elapsed := time.Since(lastFPSCheckTime); elapsed >= time.Second {
			logs.WithTag("fps", int(float64(frames)/elapsed.Seconds()+0.5)).
				WithTag("drawn", drawn).
				WithTag("uploaded", v.sink.Uploaded()).
				Debug("frame stats")
			frames = 0
			lastFPSCheckTime = time.Now()
		}
	}
}

func (v *viewer) move(dt float64) {
	var forward, right, up float32
	if v.window.GetKey(glfw.KeyW) == glfw.Press {
		forward++
	}
	if v.window.GetKey(glfw.KeyS) == glfw.Press {
		forward--
	}
	if v.window.GetKey(glfw.KeyD) == glfw.Press {
		right++
	}
	if v.window.GetKey(glfw.KeyA) == glfw.Press {
		right--
	}
	if v.window.GetKey(glfw.KeySpace) == glfw.Press {
		up++
	}
	if v.window.GetKey(glfw.KeyLeftShift) == glfw.Press {
		up--
	}
	v.camera.Move(forward, right, up, dt)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
