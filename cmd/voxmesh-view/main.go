package main

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"syscall"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"

	"voxmesh/internal/config"
	"voxmesh/internal/glsink"
	"voxmesh/internal/graphics"
	"voxmesh/internal/meshing"
	"voxmesh/internal/registry"
	"voxmesh/internal/store"
	"voxmesh/internal/world"
	"voxmesh/pkg/blockmodel"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	conf, err := config.FromEnv()
	if err != nil {
		logs.Fatal(err)
	}

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Renders the voxel columns of a store.").
		Options(&conf)
	cli.Load()

	if err := conf.Validate(); err != nil {
		logs.Fatal(err)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	errors.Encoder = json.Marshal

	blocks := newRegistry(conf.Assets)

	columns, err := store.Open(conf.Store)
	if err != nil {
		logs.Fatal(errors.New("error opening column store").Wrap(err))
	}
	defer columns.Close()

	if conf.MetricsAddr != "" {
		go serveMetrics(ctx, conf.MetricsAddr)
	}

	if err := glfw.Init(); err != nil {
		logs.Fatal(errors.New("error initializing glfw").Wrap(err))
	}
	defer glfw.Terminate()

	window, err := setupWindow(conf.Window.Width, conf.Window.Height)
	if err != nil {
		logs.Fatal(errors.New("error creating window").Wrap(err))
	}

	if err := gl.Init(); err != nil {
		logs.Fatal(errors.New("error initializing opengl").Wrap(err))
	}

	sink, err := glsink.New()
	if err != nil {
		logs.Fatal(err)
	}
	defer sink.Close()

	w := world.New(sink, meshing.BuildSectionMesh, world.WithSkipEmpty(true))

	v := &viewer{
		ctx:     ctx,
		window:  window,
		world:   w,
		sink:    sink,
		columns: columns,
		blocks:  blocks,
		camera:  graphics.NewCamera(conf.Window.Width, conf.Window.Height),
		radius:  conf.View.Distance,
	}
	v.camera.Position = mgl32.Vec3{8, 96, 8}

	if err := v.reload(); err != nil {
		logs.Fatal(err)
	}

	v.setupInputHandlers()
	v.run()
}

// newRegistry returns the default block registry, with shapes replaced by
// block models found under assets.
func newRegistry(assets string) *registry.Registry {
	reg := registry.Default()
	if assets == "" {
		return reg
	}
	if _, err := os.Stat(assets); err != nil {
		logs.WithTag("assets", assets).Debug("no block model assets")
		return reg
	}

	var names []string
	for _, id := range reg.IDs() {
		if id == registry.Air {
			continue
		}
		def, _ := reg.Definition(id)
		names = append(names, def.Name)
	}

	// Failures are logged per block and leave the built-in shapes.
	_ = reg.LoadModels(blockmodel.NewLoader(assets), names...)
	return reg
}

func serveMetrics(ctx context.Context, addr string) {
	var mux http.ServeMux
	mux.Handle("/metrics", promhttp.Handler())

	server := http.Server{
		Addr:    addr,
		Handler: &mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logs.WithTag("addr", addr).Info("serving metrics")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logs.Warn(errors.New("metrics server stopped").Wrap(err))
	}
}

func setupWindow(width, height int) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(width, height, "voxmesh", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	glfw.SwapInterval(1)
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	return window, nil
}
