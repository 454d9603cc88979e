package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"reflect"
	"syscall"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/arbor"
	"github.com/phanxgames/arbor/ecs"
	"github.com/phanxgames/arbor/view"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

var (
	// The arbor-view version number. Set at build.
	version = "v0.1.0"

	infoGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name:        "arbor_view_info",
		Help:        "arbor-view information.",
		ConstLabels: prometheus.Labels{"version": version},
	})
)

// Keeps config field names intact under obfuscating builds so the cli
// package can derive option names from them.
var _ = reflect.TypeOf(config{})

func main() {
	conf := defaultConfig()
	infoGauge.Set(1)

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	if path := os.Getenv(configFileEnv); path != "" {
		if err := loadConfigFile(path, &conf); err != nil {
			logs.Fatal(err)
		}
	}

	cli.Register().
		Help("Opens a window showing cubes with axis gizmos. Hover an axis and " +
			"use Ctrl+wheel to rotate or Shift+wheel to translate along it.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	scene := arbor.NewScene()
	scene.SetDebugMode(conf.Debug)
	buildScene(scene, conf)

	viewer := view.NewViewer(scene, conf.viewConfig())

	var world donburi.World
	if conf.ECS {
		world = donburi.NewWorld()
		scene.SetEntityStore(ecs.NewDonburiStore(world))
		ecs.InteractionEventType.Subscribe(world, logInteraction)
	}

	var runner *view.TestRunner
	if conf.TestScript != "" {
		r, err := loadTestRunner(conf.TestScript)
		if err != nil {
			logs.Fatal(err)
		}
		runner = r
		viewer.SetTestRunner(runner)
	}
	viewer.SetUpdateFunc(frameFunc(world, runner))

	if conf.MetricsAddr != "" {
		go serveMetrics(ctx, conf.MetricsAddr)
	}

	logs.WithTag("version", version).
		WithTag("log_level", conf.LogLevel).
		WithTag("cubes", conf.Cubes).
		WithTag("metrics_addr", conf.MetricsAddr).
		Info("starting arbor-view")

	if err := viewer.Run(ctx); err != nil {
		logs.Fatal(err)
	}
}

// buildScene lays out conf.Cubes cubes along X, each with an axis gizmo, and
// hangs a smaller cube with its own gizmo off the first one so that moving a
// parent visibly carries its child.
func buildScene(scene *arbor.Scene, conf config) []*arbor.Node {
	colors := []arbor.Color{
		{R: 0.9, G: 0.3, B: 0.3, A: 1},
		{R: 0.3, G: 0.7, B: 0.9, A: 1},
		{R: 0.3, G: 0.9, B: 0.5, A: 1},
	}

	offset := -float64(conf.Cubes-1) * conf.Spacing / 2
	cubes := make([]*arbor.Node, 0, conf.Cubes+1)
	for i := 0; i < conf.Cubes; i++ {
		cube := arbor.NewCube(fmt.Sprintf("cube%d", i), 1, colors[i%len(colors)])
		cube.SetPosition(offset+float64(i)*conf.Spacing, 0, 0)
		scene.Root().Add(cube)
		addAxis(scene, cube, conf)
		cubes = append(cubes, cube)
	}

	if len(cubes) > 0 {
		child := arbor.NewCube("satellite", 0.4, arbor.ColorWhite)
		child.Transform = mgl64.Translate3D(0, 1.2, 0).Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(30)))
		cubes[0].Add(child)
		addAxis(scene, child, conf)
		cubes = append(cubes, child)
	}
	return cubes
}

// frameFunc returns the per-frame hook run after input handling. It drains
// the event queue of world when set and ends the run once runner completes.
func frameFunc(world donburi.World, runner *view.TestRunner) func() error {
	return func() error {
		if world != nil {
			events.ProcessAllEvents(world)
		}
		if runner != nil && runner.Done() {
			logs.Info("test script completed")
			return ebiten.Termination
		}
		return nil
	}
}

func addAxis(scene *arbor.Scene, n *arbor.Node, conf config) {
	axis := scene.NewAxis(n)
	axis.Length = conf.AxisLength
	axis.Step = conf.AxisStep
}

func logInteraction(w donburi.World, e arbor.InteractionEvent) {
	logs.WithTag("pick_id", e.PickID).
		WithTag("button", e.Button).
		WithTag("pressed", e.Pressed).
		WithTag("modifiers", e.Modifiers).
		WithTag("handled", e.Handled).
		Debug("interaction")
}

func serveMetrics(ctx context.Context, addr string) {
	var admin http.ServeMux
	admin.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: addr, Handler: &admin}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logs.Warn(errors.New("metrics server failed").
			WithTag("addr", addr).
			Wrap(err))
	}
}
