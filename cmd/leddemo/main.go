// Leddemo plays a playlist of libled effects on a window, a terminal, a
// HUB75 panel or nowhere at all.
//
// Left and Right switch scenes, F12 toggles the scene label in the window
// backend and Escape quits. With -record, every frame is also written as a
// numbered PNG at the configured record rate. With -script, a JSON input
// script drives the playlist and the program exits when it ends.
//
// A Lua shader named shader.lua in the data path is added as an extra scene.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/vis-iks/libled"
	"github.com/vis-iks/libled/assets"
	"github.com/vis-iks/libled/display/terminal"
	"github.com/vis-iks/libled/display/window"
	"github.com/vis-iks/libled/luashader"
)

const (
	transitionMs = 1500
	luaShader    = "shader.lua"
)

func main() {
	configPath := flag.String("config", "libled.json", "configuration file")
	backend := flag.String("backend", "", "display backend, overrides the configuration")
	scriptPath := flag.String("script", "", "input script to run")
	record := flag.String("record", "", "directory to record frames into")
	scene := flag.String("scene", "", "scene to start with")
	frames := flag.Int64("frames", 0, "stop after this many frames")
	flag.Parse()

	cfg, err := libled.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	libled.SetDebug(cfg.Debug)
	if *backend != "" {
		cfg.Display.Backend = *backend
	}
	if *record != "" {
		cfg.Graphics.RecordDir = *record
	}

	disp, err := openDisplay(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer disp.Close()

	res := assets.NewResources(os.DirFS(cfg.General.DataPath))
	playlist := buildPlaylist(cfg.Display.Width, cfg.Display.Height, res)

	pcfg := libled.PlayerConfig{
		Width:         cfg.Display.Width,
		Height:        cfg.Display.Height,
		FrameMs:       int64(cfg.Graphics.FrameMs),
		ScreenshotDir: cfg.General.DataPath,
		MaxFrames:     *frames,
	}
	if cfg.Graphics.RecordDir != "" {
		if err := os.MkdirAll(cfg.Graphics.RecordDir, 0o755); err != nil {
			log.Fatal(err)
		}
		pcfg.Recorder = libled.NewFrameRecorder(cfg.Graphics.RecordDir, cfg.Graphics.RecordRate)
	}

	player := libled.NewPlayer(disp, playlist, pcfg)
	if *scene != "" && !player.SelectScene(*scene) {
		log.Fatalf("unknown scene %q, have %v", *scene, playlist.Names())
	}
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatal(err)
		}
		script, err := libled.LoadScript(data)
		if err != nil {
			log.Fatal(err)
		}
		player.SetScript(script)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := player.Run(ctx); err != nil {
		log.Fatal(err)
	}
	if r := pcfg.Recorder; r != nil {
		log.Printf("recorded %d frames to %s", r.Written(), filepath.Clean(r.Dir))
	}
}

func openDisplay(cfg *libled.Config) (libled.Display, error) {
	w, h := cfg.Display.Width, cfg.Display.Height
	var (
		d   libled.Display
		err error
	)
	switch cfg.Display.Backend {
	case "window":
		d, err = openWindow(w, h, cfg.Display.Brightness)
	case "terminal":
		d, err = openTerminal()
	case "hub75":
		d, err = openPanel(w, h, cfg.Display.Brightness)
	case "headless":
		d = libled.NewHeadlessDisplay()
	default:
		err = fmt.Errorf("unknown backend %q", cfg.Display.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s display: %w", cfg.Display.Backend, err)
	}
	return d, nil
}

func openWindow(w, h, brightness int) (libled.Display, error) {
	win, err := window.Open(w, h, window.Options{Brightness: brightness})
	if err != nil {
		return nil, err
	}
	return win, nil
}

func openTerminal() (libled.Display, error) {
	t, err := terminal.New()
	if err != nil {
		return nil, err
	}
	return t, nil
}

func centered(s string, w, h int) (*libled.Text, libled.Point) {
	t := libled.NewText(s, nil)
	t.HAlign = libled.AlignCenter
	t.VAlign = libled.AlignMiddle
	return t, libled.Pt(w/2, h/2)
}

func buildPlaylist(w, h int, res *assets.Resources) *libled.Playlist {
	pl := libled.NewPlaylist()

	pl.Add("plasma", libled.NewPlasma())

	rainbow := libled.NewGradient(libled.Red, libled.Blue)
	rainbow.Space = libled.SpaceHSV
	pl.Add("gradient", rainbow)

	sunset := libled.NewGradient(libled.Gold, libled.Color{R: 60, G: 0, B: 90, A: 255})
	sunset.Kind = libled.Radial
	sunset.Space = libled.SpaceLab
	pl.Add("radial", sunset)

	pl.Add("stars", libled.NewStarField(80, h/3))
	pl.Add("fireworks", libled.NewFireworks())
	pl.Add("comet", libled.NewComet())

	fountain := libled.DefaultEmitterConfig()
	fountain.Color = libled.Color{R: 40, G: 140, B: 255, A: 255}
	pl.Add("fountain", libled.NewParticleSystem(fountain))

	pl.Add("ripple", libled.NewShaderEffect(libled.SineRippleShader(w, h)))
	pl.Add("field lines", libled.NewShaderEffect(libled.FieldLineShader(w, h)))
	pl.Add("waves", libled.NewShaderEffect(libled.WavesShader(w, h)))
	pl.Add("voronoi", libled.NewShaderEffect(libled.VoronoiShader(w, h)))
	pl.Add("grid", libled.NewShaderEffect(libled.GridShader(w, h)))

	t, mid := centered("SHINE!", w, h)
	pl.Add("shine", libled.NewTextShine(t, mid, libled.Gold, 2000))
	t, mid = centered("SCALE ME", w, h)
	pl.Add("scale", libled.NewTextScale(t, mid, libled.White, 0.1, 1, 2000))
	t, mid = centered("APPROACH", w, h)
	pl.Add("approach", libled.NewTextApproach(t, mid, libled.Yellow))
	t, mid = centered("wavy text", w, h)
	pl.Add("wave", libled.NewTextWave(t, mid, libled.Green))
	t, mid = centered("BOUNCE", w, h)
	pl.Add("bounce", libled.NewTextBounce(t, mid, libled.Red))
	t, mid = centered("ALERT", w, h)
	pl.Add("flash", libled.NewTextFlash(t, mid, libled.Red))
	t, mid = centered("shadow", w, h)
	pl.Add("shadow", libled.NewShadowText(t, mid, libled.White))
	pl.Add("typewriter", libled.NewTypewriter(libled.NewText("hello, panel", nil), libled.Pt(2, 2), libled.Green))
	pl.Add("ticker", libled.NewTextScroll(libled.NewText("libled scrolling ticker", nil), 9, libled.Gold))

	t, mid = centered("FIRE", w, h)
	pl.Add("fire text", libled.NewFireText(libled.NewTextEffect(t, mid, libled.White)))

	t, mid = centered("outlined", w, h)
	outlined := libled.NewFiltered(libled.NewTextEffect(t, mid, libled.Blue),
		libled.NewOutlineFilter(1, libled.White))
	pl.Add("outline", outlined)

	pl.Add("blur", libled.NewBlur(libled.NewShaderEffect(libled.GridShader(w, h))))
	pl.Add("scroll", libled.NewScroll(libled.NewShaderEffect(libled.GridShader(w, h)), 8, 0))
	pl.Add("shake", libled.NewShake(libled.NewTextEffect(libled.NewText("quake", nil), libled.Pt(4, 8), libled.Yellow)))
	spot := libled.NewLightLayer(libled.NewShaderEffect(libled.GridShader(w, h)), 0.85)
	spot.AddLight(&libled.Light{
		Radius:    float32(h) / 2,
		Intensity: 1,
		Enabled:   true,
		Color:     libled.Gold,
		Path: func(timeMs int64) (x, y float32) {
			s := float64(timeMs) / 1000
			return float32(w) / 2 * (1 + float32(math.Sin(s))), float32(h) / 2 * (1 + float32(math.Sin(2*s))/2)
		},
	})
	pl.Add("spotlight", spot)
	pl.Add("fade in", libled.NewFade(libled.NewPlasma()).FadeIn(2000))

	pl.Add("crossfade", libled.NewCrossFade(libled.NewPlasma(), libled.NewFireworks(), transitionMs))
	pl.Add("dissolve", libled.NewDissolve(libled.NewSolidColor(libled.Red), libled.NewSolidColor(libled.Blue), transitionMs))
	pl.Add("slide", libled.NewSlide(libled.NewPlasma(), libled.NewStarField(80, h/3), transitionMs, libled.DirLeft))
	pl.Add("wipe", libled.NewWipe(libled.NewSolidColor(libled.Gold), libled.NewComet(), transitionMs, libled.DirDown))
	pl.Add("zoom", libled.NewZoom(libled.NewSolidColor(libled.Black), libled.NewPlasma(), transitionMs))
	pl.Add("melt", libled.NewMelt(libled.NewPlasma(), libled.NewSolidColor(libled.Black), transitionMs))

	if res.Has(luaShader) {
		if prog, err := loadShader(res, luaShader); err != nil {
			log.Printf("skipping %s: %v", luaShader, err)
		} else {
			pl.Add("lua", libled.NewShaderEffect(prog.Shader()))
		}
	}
	return pl
}

func loadShader(res *assets.Resources, name string) (*luashader.Program, error) {
	src, err := res.Text(name)
	if err != nil {
		return nil, err
	}
	return luashader.Compile(src)
}
