package main

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/stadium/config"
	"github.com/milk9111/stadium/ecs/entity"
	"github.com/milk9111/stadium/scene"
	"github.com/milk9111/stadium/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var backgroundColor = color.NRGBA{R: 0x1a, G: 0x1a, B: 0x22, A: 0xff}

type Game struct {
	cfg       *config.Config
	sceneName string
	debug     bool

	frames  int
	paused  bool
	quit    bool
	input   *keyboardMouse
	session *session.Session
	watcher *scene.Watcher
	pauseUI *ebitenui.UI
	logger  zerolog.Logger
}

func NewGame(cfg *config.Config, sceneName string, debug, watch bool) (*Game, error) {
	input, err := newKeyboardMouse(cfg.Keys, cfg.MouseSensitivity)
	if err != nil {
		return nil, err
	}
	g := &Game{
		cfg:       cfg,
		sceneName: sceneName,
		debug:     debug,
		input:     input,
		logger:    log.Logger.With().Str("component", "game").Logger(),
	}
	g.session, err = session.Load(sceneName, input, g.viewport())
	if err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if watch {
		dirs := []string{scene.Dir, filepath.Join(scene.Dir, "scripts")}
		g.watcher, err = scene.NewWatcher(dirs...)
		if err != nil {
			g.logger.Warn().Err(err).Strs("dirs", dirs).Msg("hot reload disabled")
			g.watcher = nil
		}
	}
	return g, nil
}

func (g *Game) viewport() entity.Viewport {
	return entity.Viewport{Width: g.cfg.Window.Width, Height: g.cfg.Window.Height}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.session.Step(1 / float64(g.cfg.TPS))
	return nil
}

// pollWatcher applies pending file changes without blocking the frame.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			switch {
			case scene.IsScriptFile(path):
				g.session.ReloadScripts()
			case scene.IsSceneFile(path) && filepath.Base(path) == filepath.Base(g.sceneName):
				g.reloadScene()
			}
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				g.logger.Error().Err(err).Msg("watch")
			}
		default:
			return
		}
	}
}

// reloadScene rebuilds the world from the scene file. The running session
// is kept when the new one fails to load.
func (g *Game) reloadScene() {
	s, err := session.Load(g.sceneName, g.input, g.viewport())
	if err != nil {
		g.logger.Error().Err(err).Str("scene", g.sceneName).Msg("reload scene")
		return
	}
	g.session = s
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if g.debug {
		DrawPhysicsDebug(g.session, screen)
		DrawPlayerStateDebug(g.session, screen)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()))
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}
