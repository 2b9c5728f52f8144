// ABOUTME: Standalone PCM payload to WAV converter
// ABOUTME: Reads a base64 payload file and writes a WAV container
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Wayfarer-Audio/wayfarer-go/pkg/wayfarer"
)

var (
	in  = flag.String("in", "", "File containing a base64 PCM payload (16-bit LE mono, 24kHz)")
	out = flag.String("out", "narration.wav", "Output WAV path")
)

func main() {
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: wayfarer-export -in payload.b64 [-out narration.wav]")
		os.Exit(2)
	}

	payload, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("Failed to read payload: %v", err)
	}

	wav, err := wayfarer.EncodeToWAV(strings.TrimSpace(string(payload)))
	if err != nil {
		log.Fatalf("Failed to encode WAV: %v", err)
	}

	if err := os.WriteFile(*out, wav, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}

	fmt.Printf("Wrote %d bytes to %s\n", len(wav), *out)
}
