package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"geomark/app"
	"geomark/config"
	"geomark/location"
	"geomark/storage"

	_ "github.com/ebitengine/hideconsole"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", storage.DataFile("config.yaml"), "Path to the configuration file")
	flag.StringVar(&configPath, "c", storage.DataFile("config.yaml"), "Path to the configuration file (shorthand)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)

	if err := app.InitClipboard(); err != nil {
		logger.Warn().Err(err).Msg("clipboard unavailable, copy shortcut disabled")
	}

	store := storage.NewFileStore(logger)
	gateway := storage.NewMarkerGateway(store, logger)
	gate := location.NewGate(store, logger)
	svc := location.NewService(gate, newProvider(cfg, logger), logger)

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalChan
		logger.Info().Msg("received shutdown signal")
		os.Exit(0)
	}()

	ebiten.SetWindowTitle("Geomark")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)

	game := app.New(cfg, gateway, svc, logger)
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal().Err(err).Msg("screen terminated")
	}
}

// newProvider picks the position source named by the configuration. A nil
// provider is legal: acquiring then fails with a user-visible notice instead
// of a crash.
func newProvider(cfg config.Config, logger zerolog.Logger) location.Provider {
	if cfg.Location.SensorBased {
		logger.Info().Str("port", cfg.Location.GPSDevicePort).Msg("using GPS sensor provider")
		return location.NewDeviceSensorProvider(cfg.Location.GPSDevicePort, cfg.Location.GPSDeviceBaudRate)
	}
	if cfg.Location.MapsAPIKey != "" {
		p, err := location.NewGoogleGeolocationProvider(cfg.Location.MapsAPIKey)
		if err != nil {
			logger.Error().Err(err).Msg("failed to create geolocation provider")
			return nil
		}
		logger.Info().Msg("using Google geolocation provider")
		return p
	}
	logger.Warn().Msg("no location provider configured")
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
