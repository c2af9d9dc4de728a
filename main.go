package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stadium/config"
	"github.com/milk9111/stadium/ecs/entity"
	"github.com/milk9111/stadium/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Config string `help:"YAML config file. Defaults are used when empty." type:"existingfile" short:"c"`
	Debug  bool   `help:"Whether to enable debug logging."`

	Play struct {
		Scene     string `help:"Scene file to load, overriding the config." short:"s"`
		DebugDraw bool   `help:"Draw collider footprints and player state." name:"debug-draw"`
		Watch     bool   `help:"Reload the scene and scripts when they change on disk."`
	} `cmd:"" default:"1" help:"Run the game."`

	Check struct {
		Scene string `help:"Scene file to check, overriding the config." short:"s"`
	} `cmd:"" help:"Validate the config and scene, build the world and exit."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	ctx := kong.Parse(&CLI,
		kong.Name("stadium"),
		kong.Description("a third-person platformer playground"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	cfg, err := loadConfig(CLI.Config)
	if err != nil {
		writeError(err)
	}

	switch ctx.Command() {
	case "play":
		if err := playCommand(cfg); err != nil {
			writeError(err)
		}
	case "check":
		if err := checkCommand(cfg); err != nil {
			writeError(err)
		}
	}
}

func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(level)
	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	if err := cfg.Validate(knownKey); err != nil {
		return nil, err
	}
	return cfg, nil
}

func playCommand(cfg *config.Config) error {
	sceneName := cfg.Scene
	if CLI.Play.Scene != "" {
		sceneName = CLI.Play.Scene
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	game, err := NewGame(cfg, sceneName, cfg.DebugDraw || CLI.Play.DebugDraw, CLI.Play.Watch)
	if err != nil {
		return err
	}
	defer game.Close()

	return ebiten.RunGame(game)
}

// checkCommand builds the scene headless and runs one tick so script
// errors show up in the log.
func checkCommand(cfg *config.Config) error {
	sceneName := cfg.Scene
	if CLI.Check.Scene != "" {
		sceneName = CLI.Check.Scene
	}

	s, err := session.Load(sceneName, nil, entity.Viewport{Width: cfg.Window.Width, Height: cfg.Window.Height})
	if err != nil {
		return err
	}
	s.Step(1 / float64(cfg.TPS))

	fmt.Printf("%s: %s\n", sceneName, s.Summary())
	return nil
}
