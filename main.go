package main

import (
	"flag"
	"log"
	"strings"

	"github.com/faiface/mainthread"

	"github.com/Pimmez/opengl-GraphicsProgramming/game"
)

var (
	configPath = flag.String("config", "assets/config.yaml", "yaml configuration")
	sceneName  = flag.String("scene", "solar", "scene to show: "+strings.Join(game.SceneNames(), ", "))
	assetsPath = flag.String("assets", "", "asset directory, overrides the configuration")
)

// loadConfig reads the configuration, a non empty assets path replaces the configured one
func loadConfig(path, assets string) (game.Config, error) {
	cfg, err := game.LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	if assets != "" {
		cfg.Assets = assets
	}
	return cfg, nil
}

func main() {
	// init
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	flag.Parse()

	cfg, err := loadConfig(*configPath, *assetsPath)
	if err != nil {
		log.Fatal(err)
	}

	mainthread.Run(func() {
		if err := game.Run(cfg, *sceneName); err != nil {
			log.Fatal(err)
		}
	})
}
