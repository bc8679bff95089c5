// Command garland runs the interactive particle holiday greeting.
//
// Click (or tap) to scatter the tree and pull it back together. With an
// external hand-landmark detector streaming over WebSocket, pinch to form
// the tree, open your hand to scatter it, and move your wrist to steer the
// rotation. Press P to hang a photo on the tree, M to toggle the music,
// C to save a greeting card PNG, or drop image files into the watched
// folder.
package main

import (
	"flag"
	"os"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"
	"github.com/phanxgames/garland"
	"go.uber.org/zap"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config (optional)")
		feedURL    = flag.String("feed", "", "hand landmark feed URL (overrides config)")
		track      = flag.String("track", "", "music track path (overrides config)")
		overlay    = flag.Bool("overlay", true, "show the status overlay")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	log := buildLogger(*verbose)
	defer log.Sync()

	cfg := garland.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = garland.LoadConfigFile(*configPath)
		if err != nil {
			log.Fatal("could not load config", zap.Error(err))
		}
	}
	if *feedURL != "" {
		cfg.Gesture.FeedURL = *feedURL
	}
	if *track != "" {
		cfg.Audio.Track = *track
	}

	scene := garland.NewScene(cfg, log)

	// Gesture feed: a failure here disables gestures, nothing more.
	if cfg.Gesture.FeedURL != "" {
		feed, err := garland.OpenLandmarkFeed(cfg.Gesture.FeedURL, cfg.Gesture.PinchThreshold, log)
		if err != nil {
			log.Warn("gesture input unavailable, click control only", zap.Error(err))
		} else {
			defer feed.Close()
			scene.SetGestureSource(feed)
		}
	}

	jukebox := garland.NewJukebox(log)
	defer jukebox.Close()
	if cfg.Audio.Track != "" {
		if err := jukebox.Load(cfg.Audio.Track); err != nil {
			log.Warn("music unavailable", zap.Error(err))
		}
	}

	// Photos arriving from the picker dialog or the drop folder are
	// marshaled onto the game tick through this channel.
	photos := make(chan string, 8)

	if cfg.Photos.WatchDir != "" {
		watcher, err := garland.WatchPhotos(cfg.Photos.WatchDir, log, func(path string) {
			select {
			case photos <- path:
			default:
				log.Warn("photo queue full, dropping", zap.String("path", path))
			}
		})
		if err != nil {
			log.Warn("photo folder unavailable", zap.Error(err))
		} else {
			defer watcher.Close()
		}
	}

	var pickerOpen atomic.Bool
	onUpdate := func() error {
		for {
			select {
			case path := <-photos:
				if _, err := scene.AddPhoto(path); err != nil {
					log.Warn("could not add photo", zap.String("path", path), zap.Error(err))
				}
				continue
			default:
			}
			break
		}

		if inpututil.IsKeyJustPressed(ebiten.KeyM) {
			jukebox.Toggle()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			scene.SaveCard()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyP) && pickerOpen.CompareAndSwap(false, true) {
			go func() {
				defer pickerOpen.Store(false)
				path, err := zenity.SelectFile(
					zenity.Title("Hang a photo on the tree"),
					zenity.FileFilters{{Name: "Images", Patterns: []string{"*.png", "*.jpg", "*.jpeg", "*.gif"}}},
				)
				if err != nil {
					if err != zenity.ErrCanceled {
						log.Warn("photo picker failed", zap.Error(err))
					}
					return
				}
				photos <- path
			}()
		}
		return nil
	}

	err := garland.Run(scene, garland.RunConfig{
		Title:       cfg.Window.Title,
		Width:       cfg.Window.Width,
		Height:      cfg.Window.Height,
		ShowOverlay: *overlay,
		OnUpdate:    onUpdate,
	})
	if err != nil {
		log.Error("greeting exited", zap.Error(err))
		os.Exit(1)
	}
}

func buildLogger(verbose bool) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if verbose {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return log
}
