package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"time"
)

// ProfilingConfig holds configuration for profiling
type ProfilingConfig struct {
	Enabled bool
	Port    string
}

// StartProfiling starts the profiling server and sets up profiling
func StartProfiling(config ProfilingConfig) {
	if !config.Enabled {
		return
	}

	runtime.SetBlockProfileRate(1)
	runtime.SetMutexProfileFraction(1)

	if config.Port != "" {
		go func() {
			log.Printf("Starting pprof server on :%s", config.Port)
			log.Printf("CPU profile: http://localhost:%s/debug/pprof/profile", config.Port)
			log.Printf("Heap profile: http://localhost:%s/debug/pprof/heap", config.Port)

			if err := http.ListenAndServe(":"+config.Port, nil); err != nil {
				log.Printf("pprof server failed: %v", err)
			}
		}()
	}
}

// GetProfilingConfigFromEnv creates profiling config from environment variables
func GetProfilingConfigFromEnv() ProfilingConfig {
	enabled := os.Getenv("ENABLE_PROFILING") == "true"
	port := os.Getenv("PPROF_PORT")
	if port == "" {
		port = "42069"
	}

	return ProfilingConfig{
		Enabled: enabled,
		Port:    port,
	}
}

// GenerationMetrics tracks house generation timing.
type GenerationMetrics struct {
	HousesGenerated int64
	Regenerations   int64
	AvgGenerateTime time.Duration
	StartTime       time.Time
}

// NewGenerationMetrics creates a new metrics tracker
func NewGenerationMetrics() *GenerationMetrics {
	return &GenerationMetrics{StartTime: time.Now()}
}

// TrackGenerate records one house generation.
func (gm *GenerationMetrics) TrackGenerate(duration time.Duration) {
	gm.HousesGenerated++
	gm.AvgGenerateTime = (gm.AvgGenerateTime*time.Duration(gm.HousesGenerated-1) + duration) / time.Duration(gm.HousesGenerated)
}

// LogMetrics logs current generation metrics
func (gm *GenerationMetrics) LogMetrics() {
	log.Printf("=== Generation Metrics ===")
	log.Printf("Uptime: %v", time.Since(gm.StartTime))
	log.Printf("Houses generated: %d", gm.HousesGenerated)
	log.Printf("Regenerations: %d", gm.Regenerations)
	log.Printf("Average generate time: %v", gm.AvgGenerateTime)
}

// StartMetricsReporting starts periodic metrics reporting
func StartMetricsReporting(metrics *GenerationMetrics, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			metrics.LogMetrics()
		}
	}()
}
