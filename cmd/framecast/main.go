package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/ivlev/framecast/internal/composition"
	"github.com/ivlev/framecast/internal/config"
	"github.com/ivlev/framecast/internal/manifest"
	"github.com/ivlev/framecast/internal/playback"
	"github.com/ivlev/framecast/internal/preview"
	"github.com/ivlev/framecast/internal/system"
	"github.com/ivlev/framecast/internal/timeline"
)

func main() {
	os.MkdirAll("input/manifests", 0755)

	manifestPtr := flag.String("manifest", "", "Path to a timeline manifest (default: the latest YAML in input/manifests/)")
	outputPtr := flag.String("write-manifest", "", "Write the normalized composition back as a manifest")
	fpsPtr := flag.Int("fps", 30, "Nominal frame rate")
	clipPtr := flag.Int("clip-frames", 0, "Default media clip length in frames (0 = built-in default)")
	textPtr := flag.Int("text-frames", 0, "Default text overlay length in frames (0 = built-in default)")
	workersPtr := flag.Int("workers", system.WorkerCount(), "Probe worker pool size")
	previewPtr := flag.Bool("preview", false, "Play the composition in real time against a simulated backend")
	statsPtr := flag.Bool("stats", false, "Print host and timing stats")

	flag.Parse()

	cfg := &config.Config{
		FPS:            *fpsPtr,
		ClipFrames:     *clipPtr,
		OverlayFrames:  *textPtr,
		Workers:        *workersPtr,
		ManifestPath:   *manifestPtr,
		ManifestOutput: *outputPtr,
		Preview:        *previewPtr,
		ShowStats:      *statsPtr,
	}

	if cfg.ManifestPath == "" {
		latest, err := system.FindLatestManifest("input/manifests")
		if err != nil {
			log.Fatalf("[-] Error: %v. Put a timeline manifest in input/manifests/", err)
		}
		cfg.ManifestPath = latest
		fmt.Printf("[*] Selected manifest: %s\n", cfg.ManifestPath)
	}

	m, err := manifest.Read(cfg.ManifestPath)
	if err != nil {
		log.Fatalf("[-] Failed to read manifest: %v", err)
	}

	eng := timeline.NewEngine(cfg)
	defer eng.Close()

	start := time.Now()
	if err := manifest.Apply(m, eng); err != nil {
		log.Fatalf("[-] Failed to place items: %v", err)
	}

	clips := eng.Clips()
	overlays := eng.TextOverlays()
	seq := composition.Build(clips, overlays)

	fmt.Println("--- [TIMELINE COMPOSITION] ---")
	fmt.Printf("[*] Items: %d clips, %d overlays | Total: %d frames @ %d FPS\n",
		len(clips), len(overlays), eng.TotalDuration(), cfg.FPS)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reports, err := preview.Probe(ctx, seq, cfg.FPS, cfg.Workers)
	if err != nil {
		log.Fatalf("[-] Probe failed: %v", err)
	}
	for _, r := range reports {
		if r.SettleFrame < 0 {
			fmt.Printf("[>] %-8s %6d..%-6d media  %s\n", r.ID, r.From, r.To, r.Label)
			continue
		}
		fmt.Printf("[>] %-8s %6d..%-6d text   %q (settles at +%d)\n", r.ID, r.From, r.To, r.Label, r.SettleFrame)
	}

	if cfg.ManifestOutput != "" {
		if err := manifest.Write(manifest.Snapshot(seq), cfg.ManifestOutput); err != nil {
			log.Fatalf("[-] Failed to write manifest: %v", err)
		}
		fmt.Printf("[*] Normalized manifest written: %s\n", cfg.ManifestOutput)
	}

	if cfg.Preview {
		backend := playback.NewSimBackend(cfg.FPS, seq.DurationInFrames())
		eng.AttachBackend(backend)
		if err := preview.Run(ctx, eng, playback.DefaultSamplePeriod, os.Stdout); err != nil {
			log.Fatalf("[-] Preview aborted: %v", err)
		}
	}

	if cfg.ShowStats {
		fmt.Println("--- [STATS] ---")
		fmt.Printf("Workers: %d | Available memory: %d MiB\n", cfg.Workers, system.AvailableMemoryMB())
		fmt.Printf("Placement + probe time: %.3fs\n", time.Since(start).Seconds())
	}

	fmt.Println("[+++] Done.")
}
