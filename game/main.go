package game

import (
	"fmt"
	"log"
	"time"
)

// Run opens the window, loads the scene and loops until the window is closed.
// It must be called from within mainthread.Run.
func Run(cfg Config, sceneName string) error {
	scene, err := NewScene(sceneName, cfg)
	if err != nil {
		return err
	}

	// managers
	context, err := NewGlContextSystem(cfg.Window)
	if err != nil {
		return err
	}
	defer context.Cleanup()

	ls := AssetLoaderSystem(&AssetOpts{
		Path:    cfg.Assets,
		Context: context,
	})
	defer ls.Cleanup()

	camera := NewCamera(cfg.Camera, context.Aspect())
	context.OnResize().Subscribe(func(msg interface{}) {
		m := msg.(MessageResize)
		camera.SetAspect(float32(m.Width) / float32(m.Height))
		log.Printf("resized to %vx%v", m.Width, m.Height)
	}, PriorityFirst)
	context.OnKey().Subscribe(closeOnEscape(context.Close), PriorityLast)

	// systems
	engine := NewEngine()
	engine.AddSystem("control", NewFlyControlSystem(context, camera), PriorityFirst)
	scene.Setup(engine, camera)
	engine.AddSystem("render", NewRenderSystem(context, camera, scene), PriorityRender)

	start := time.Now()
	if err := ls.Preload(scene.Assets(ls)); err != nil {
		return fmt.Errorf("scene %s: %w", sceneName, err)
	}
	log.Printf("scene %s loaded in %v", sceneName, time.Since(start).Round(time.Millisecond))

	// main loop
	var (
		lastTime = time.Now()
		now      time.Time
		delta    time.Duration
		ds       float64

		ratio  = 0.01
		curfps = float64(cfg.Window.FPS)

		update  = time.Tick(time.Second / time.Duration(cfg.Window.FPS))
		console = time.Tick(500 * time.Millisecond)
	)

	for context.isRunning() {
		select {
		case <-update:
			// calc delay
			now = time.Now()
			delta = now.Sub(lastTime)
			lastTime = now

			// calc fps
			if ds = delta.Seconds(); ds > 0 {
				curfps = curfps*(1-ratio) + (1.0/ds)*ratio
			}

			// update
			if err := engine.Update(delta); err != nil {
				return err
			}
		case <-console:
			// print fps
			log.Printf("%.1f fps", curfps)
		}
	}

	return nil
}
