// Command blackhole opens a window and renders the visualization until the
// window closes or ESC is pressed. Exit status 1 means initialization or a
// render pass failed.
package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/Lioooooo123/blackhole"
	"github.com/Lioooooo123/blackhole/internal/glbackend"
)

func init() {
	// GLFW and GL calls must stay on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	cfgPath := flag.String("config", "", "optional TOML tuning file")
	assets := flag.String("assets", "assets", "directory holding the skybox and color map")
	shaderDir := flag.String("shaders", "", "load and watch shaders from this directory instead of the embedded copies")
	flag.Parse()

	cfg := defaultConfig()
	if *cfgPath != "" {
		if err := cfg.load(*cfgPath); err != nil {
			log.Fatalf("[blackhole] config: %v", err)
		}
	}

	backend, err := glbackend.New(glbackend.Config{
		Title:     cfg.Title,
		Width:     cfg.Width,
		Height:    cfg.Height,
		ShaderDir: *shaderDir,
	})
	if err != nil {
		log.Fatalf("[blackhole] %v", err)
	}
	defer backend.Destroy()

	opts := cfg.options()
	opts = append(opts, blackhole.OptAssets(*assets))
	if *shaderDir != "" {
		opts = append(opts, blackhole.OptWatchShaders(*shaderDir))
	}
	if err := blackhole.NewRenderer(backend, opts...).Run(); err != nil {
		log.Fatalf("[blackhole] %v", err)
	}
}
