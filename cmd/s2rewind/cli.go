package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/s2rewind/analyser/internal/api"
	"github.com/s2rewind/analyser/internal/cache"
	"github.com/s2rewind/analyser/internal/config"
	"github.com/s2rewind/analyser/internal/dispatcher"
	"github.com/s2rewind/analyser/internal/geometry"
	"github.com/s2rewind/analyser/internal/palette"
	"github.com/s2rewind/analyser/internal/render"
	"github.com/s2rewind/analyser/internal/replay"
	"github.com/s2rewind/analyser/internal/util"
)

func usage() {
	fmt.Fprintf(os.Stderr, `s2rewind %s - StarCraft II replay telemetry analyser

Usage:
  s2rewind [-config dir] process <archive.json ...>
  s2rewind [-config dir] demo
  s2rewind version

Commands:
  process   run decoded replay archives through the pipeline and store them
  demo      process the built-in demo replay and run the headless map view
  version   print version information
`, CurrentVersion)
}

func main() {
	configDir := flag.String("config", ".", "directory holding s2rewind.cfg.json")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	if strings.ToLower(args[0]) == "version" {
		fmt.Printf("s2rewind %s (built %s)\n", CurrentVersion, BuildDate)
		return
	}

	if err := setup(*configDir); err != nil {
		fmt.Fprintf(os.Stderr, "setup failed: %v\n", err)
		os.Exit(1)
	}
	defer shutdown()

	var err error
	switch strings.ToLower(args[0]) {
	case "process":
		if len(args) < 2 {
			usage()
			os.Exit(2)
		}
		err = processFiles(args[1:])
	case "demo":
		err = runDemo()
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		Logger.Error("Command failed", "command", args[0], "error", err)
		shutdown()
		os.Exit(1)
	}
}

// processFiles dispatches each archive through the pipeline, then exports
// the session.
func processFiles(paths []string) error {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			Logger.Error("Skipping unreadable file", "path", path, "error", err)
			continue
		}

		result, err := eventDispatcher.Dispatch(dispatcher.Event{
			Command:   ":PROCESS:",
			Args:      []string{filepath.Base(path)},
			Payload:   data,
			Timestamp: time.Now(),
		})
		if err != nil {
			Logger.Error("Failed to process replay", "path", path, "error", err)
			continue
		}
		Logger.Info("Replay stored", "path", path, "id", result)
	}

	exported, err := eventDispatcher.Dispatch(dispatcher.Event{
		Command:   ":EXPORT:",
		Timestamp: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to export session: %w", err)
	}
	if paths, ok := exported.([]string); ok && len(paths) > 0 {
		Logger.Info("Session exported", "files", paths)
		uploadExports(paths)
	}
	return nil
}

// uploadExports pushes the session's export files to the web frontend when
// one is configured.
func uploadExports(paths []string) {
	serverURL := config.GetString("api.serverUrl")
	if serverURL == "" {
		return
	}

	client := api.New(serverURL, config.GetString("api.apiKey"))
	if err := client.Healthcheck(); err != nil {
		Logger.Warn("Web frontend unreachable, skipping upload", "error", err)
		return
	}

	for _, path := range paths {
		err := client.Upload(path, api.UploadMetadata{
			ReplayName: filepath.Base(path),
		})
		if err != nil {
			Logger.Error("Failed to upload export", "path", path, "error", err)
			continue
		}
		Logger.Info("Uploaded export", "path", path)
	}
}

// runDemo pushes the built-in replay through the pipeline, prints its
// economy curve, and runs the render loop against the headless device.
func runDemo() error {
	demo := replay.NewProcessor(replay.Dependencies{
		Decoder: &replay.StaticDecoder{Archives: map[string]*replay.Archive{
			"demo.SC2Replay": replay.DemoArchive(),
		}},
		Logger: Logger,
	})

	processed, err := demo.Process(replay.Upload{Name: "demo.SC2Replay"})
	if err != nil {
		return err
	}
	if err := storageBackend.AddReplay(processed); err != nil {
		return err
	}

	fmt.Printf("Map: %s (%s)\n", processed.Details.MapName(), util.MapLink(processed.Details.MapName()))
	for _, p := range processed.Details.Players {
		fmt.Printf("  %s (%s) - %s\n", util.UnescapeClanTag(p.Name), p.Race, p.Result.String())
	}
	for _, s := range processed.Snapshots {
		fmt.Printf("  frame %4d player %d: %s, supply %s\n",
			s.Frame, s.PlayerID,
			util.FormatResources(s.Minerals, s.Vespene),
			util.FormatSupply(s.SupplyUsed, s.SupplyCap))
	}

	// Rebuild the unit layer the way the live view does, then animate it.
	units := cache.NewUnitCache()
	archive := replay.DemoArchive()
	for _, ev := range archive.Events {
		units.Apply(ev)
	}

	scene := render.BuildScene(units.Units(), palette.NewTable(Logger))

	dev := &headlessDevice{}
	renderer := render.New(dev, render.WithLogger(Logger))
	defer renderer.Close()

	if err := renderer.Init(scene); err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := renderer.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	renderer.Stop()

	fmt.Printf("Rendered %d frames of %d vertices (clock %.0f)\n",
		dev.Frames(), len(scene)/geometry.VertexStride, renderer.Elapsed())

	if err := storageBackend.EndSession(); err != nil {
		return err
	}
	Logger.Info("Demo session complete",
		"replays", 1,
		"outputDir", config.GetStorageConfig().Memory.OutputDir,
	)
	return nil
}
