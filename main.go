// ABOUTME: Entry point for the Wayfarer landmark narrator
// ABOUTME: Parses CLI flags and starts the tour application
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Wayfarer-Audio/wayfarer-go/internal/app"
	"github.com/Wayfarer-Audio/wayfarer-go/internal/audio"
	"github.com/Wayfarer-Audio/wayfarer-go/internal/config"
	"github.com/Wayfarer-Audio/wayfarer-go/internal/fetch"
	"github.com/Wayfarer-Audio/wayfarer-go/internal/gemini"
	"github.com/Wayfarer-Audio/wayfarer-go/internal/history"
	"github.com/Wayfarer-Audio/wayfarer-go/internal/player"
	"github.com/Wayfarer-Audio/wayfarer-go/internal/share"
	"github.com/Wayfarer-Audio/wayfarer-go/internal/ui"
	"github.com/Wayfarer-Audio/wayfarer-go/internal/version"
)

var (
	photoPath = flag.String("photo", "", "Photo to analyze on startup")
	voice     = flag.String("voice", "", "Narration voice (default from env)")
	outDir    = flag.String("out", "", "Directory for saved WAV files and shared photos")
	saveWAV   = flag.Bool("save", false, "Save the narration WAV after analysis (headless mode)")
	logFile   = flag.String("log-file", "wayfarer.log", "Log file path")
	noTUI     = flag.Bool("no-tui", false, "Disable TUI, analyze one photo and exit")
)

func main() {
	flag.Parse()

	useTUI := !*noTUI

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	cfg := config.Load()
	if *voice != "" {
		cfg.Voice = *voice
	}
	if *outDir != "" {
		cfg.OutDir = *outDir
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	log.Printf("Starting %s %s", version.Product, version.Version)

	store, err := history.NewStore(cfg.HistoryPath)
	if err != nil {
		log.Fatalf("Failed to open history: %v", err)
	}
	saver, err := share.NewSaver(cfg.OutDir)
	if err != nil {
		log.Fatalf("Failed to prepare output directory: %v", err)
	}
	videos, err := fetch.NewDownloader(filepath.Join(cfg.OutDir, "tours"), cfg.APIKey)
	if err != nil {
		log.Fatalf("Failed to prepare video directory: %v", err)
	}

	output := player.NewOutput()
	defer output.Close()

	tour := app.New(app.Config{
		Client: gemini.NewClient(gemini.Options{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			TTSModel:   cfg.TTSModel,
			VideoModel: cfg.VideoModel,
		}),
		Output:  output,
		History: store,
		Saver:   saver,
		Videos:  videos,
		Voice:   cfg.Voice,
		APIKey:  cfg.APIKey,
	})
	defer tour.Stop()

	if !useTUI {
		runHeadless(tour)
		return
	}

	runTUI(tour)
}

// runHeadless analyzes one photo, plays its narration, and exits
func runHeadless(tour *app.Tour) {
	if *photoPath == "" {
		log.Fatalf("headless mode requires -photo")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	result, err := tour.Analyze(ctx, *photoPath)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	fmt.Printf("%s (%s)\n\n%s\n", result.Landmark.Name, result.Landmark.Location, result.History)

	// Playback is fire-and-forget; hold the process for its duration
	if buf, err := audio.DecodePCM(result.AudioB64, audio.WAVSampleRate); err == nil {
		select {
		case <-time.After(buf.Duration()):
		case <-ctx.Done():
		}
	}

	if *saveWAV {
		path, err := tour.SaveNarration()
		if err != nil {
			log.Fatalf("Save failed: %v", err)
		}
		fmt.Printf("Saved narration to %s\n", path)
	}
}

// runTUI starts the interactive interface and dispatches its actions
func runTUI(tour *app.Tour) {
	controls := ui.NewControls()
	prog, err := ui.Run(controls)
	if err != nil {
		log.Fatalf("Failed to start TUI: %v", err)
	}
	go prog.Run()

	update := func(msg ui.StatusMsg) {
		prog.Send(msg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go dispatchActions(ctx, tour, controls, update)

	if *photoPath != "" {
		go analyze(ctx, tour, *photoPath, update)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-controls.Quit:
		log.Printf("Received quit signal from TUI")
	case <-sigChan:
		log.Printf("Shutdown signal received")
	}

	prog.Quit()
}

// analyze runs the full flow, streaming stage updates to the TUI
func analyze(ctx context.Context, tour *app.Tour, path string, update func(ui.StatusMsg)) {
	update(ui.StatusMsg{Stage: "identifying"})

	result, err := tour.Analyze(ctx, path)
	if err != nil {
		log.Printf("Analysis failed: %v", err)
		update(ui.StatusMsg{Error: "Could not analyze the photo"})
		return
	}

	count := len(tour.History())
	update(ui.StatusMsg{
		Stage:        "playing",
		LandmarkName: result.Landmark.Name,
		Location:     result.Landmark.Location,
		HistoryText:  result.History,
		Voice:        result.Voice,
		HistoryCount: &count,
	})
}

// dispatchActions executes TUI actions against the tour
func dispatchActions(ctx context.Context, tour *app.Tour, controls *ui.Controls, update func(ui.StatusMsg)) {
	voices := tour.Voices()
	voiceIdx := 0

	nextVoice := func() string {
		voiceIdx = (voiceIdx + 1) % len(voices)
		return voices[voiceIdx]
	}

	for {
		select {
		case action := <-controls.Actions:
			switch action {
			case ui.ActionReplay:
				if err := tour.Replay(); err != nil {
					update(ui.StatusMsg{Error: "Could not play the audio narration"})
				} else {
					update(ui.StatusMsg{Stage: "playing"})
				}

			case ui.ActionCycleVoice:
				v := nextVoice()
				update(ui.StatusMsg{Stage: "narrating", Voice: v})
				if result, err := tour.Regenerate(ctx, v); err != nil {
					log.Printf("Regeneration failed: %v", err)
					update(ui.StatusMsg{Error: "Could not regenerate the narration"})
				} else {
					update(ui.StatusMsg{Stage: "playing", Voice: result.Voice})
				}

			case ui.ActionCycleVoiceLive:
				v := nextVoice()
				update(ui.StatusMsg{Stage: "narrating", Voice: v})
				if result, err := tour.RegenerateLive(ctx, v); err != nil {
					log.Printf("Live regeneration failed: %v", err)
					update(ui.StatusMsg{Error: "Could not stream the narration"})
				} else {
					update(ui.StatusMsg{Stage: "playing", Voice: result.Voice})
				}

			case ui.ActionSaveWAV:
				if path, err := tour.SaveNarration(); err != nil {
					log.Printf("Save failed: %v", err)
					update(ui.StatusMsg{Error: "Could not save the narration"})
				} else {
					update(ui.StatusMsg{SavedPath: path})
				}

			case ui.ActionSharePhoto:
				if path, err := tour.SharePhoto(); err != nil {
					log.Printf("Share failed: %v", err)
					update(ui.StatusMsg{Error: "Could not share the photo"})
				} else {
					update(ui.StatusMsg{SavedPath: path})
				}

			case ui.ActionGeneratePost:
				if post, err := tour.GeneratePost(ctx); err != nil {
					log.Printf("Post generation failed: %v", err)
					update(ui.StatusMsg{Error: "Could not generate a post"})
				} else {
					update(ui.StatusMsg{PostText: post})
				}

			case ui.ActionVideoTour:
				update(ui.StatusMsg{Stage: "video"})
				go func() {
					if uri, err := tour.VideoTour(ctx); err != nil {
						log.Printf("Video tour failed: %v", err)
						update(ui.StatusMsg{Error: "Could not generate the video tour"})
					} else {
						update(ui.StatusMsg{Stage: "playing", VideoURI: uri})
					}
				}()

			case ui.ActionClearHistory:
				if err := tour.ClearHistory(); err != nil {
					log.Printf("Clear failed: %v", err)
					update(ui.StatusMsg{Error: "Could not clear history"})
				} else {
					zero := 0
					update(ui.StatusMsg{HistoryCount: &zero})
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
