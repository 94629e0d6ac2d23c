// Command stresstest hammers a running API server with concurrent program
// generations and workout logs, then reports the success rate.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/logging"
	"github.com/FitCoachOrg/FitCoachTrainer-sub001/internal/testhelpers"
	"golang.org/x/sync/errgroup"
)

const (
	requestTimeout          = 30 * time.Second
	readinessTimeout        = 30 * time.Second
	maxConcurrentOperations = 20
	defaultIterations       = 200
	successRateThreshold    = 95.0
	percentageMultiplier    = 100
	demoClientID            = 1
)

type runner struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger

	attempts  atomic.Int64
	failures  atomic.Int64
	durations atomic.Int64 // cumulative milliseconds
}

func (r *runner) waitForReady(ctx context.Context) error {
	deadline := time.Now().Add(readinessTimeout)
	for time.Now().Before(deadline) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/api/healthy", nil)
		if err != nil {
			return fmt.Errorf("build readiness request: %w", err)
		}
		resp, err := r.client.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(time.Second)
	}
	return fmt.Errorf("server not ready after %s", readinessTimeout)
}

func (r *runner) post(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s returned %d", path, resp.StatusCode)
	}
	return nil
}

// scenario runs one generate-then-log round trip for the demo client.
func (r *runner) scenario(ctx context.Context, iteration int) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	start := time.Now()
	r.attempts.Add(1)

	programPath := fmt.Sprintf("/api/clients/%d/programs", demoClientID)
	err := r.post(ctx, programPath, map[string]int{"weeks": 1})
	if err == nil && iteration%4 == 0 {
		logPath := fmt.Sprintf("/api/clients/%d/logs", demoClientID)
		err = r.post(ctx, logPath, map[string]any{
			"date": time.Now().Format(time.DateOnly),
			"exercises": []map[string]any{
				{"name": "Barbell Back Squat", "sets": 4, "reps": "5", "weight": "80kg"},
			},
		})
	}
	if err != nil {
		r.failures.Add(1)
		r.logger.LogAttrs(ctx, slog.LevelWarn, "scenario failed",
			slog.Int("iteration", iteration), slog.Any("error", err))
		return
	}
	r.durations.Add(time.Since(start).Milliseconds())
}

func run(ctx context.Context, logger *slog.Logger, baseURL string, iterations int) error {
	r := &runner{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
	if err := r.waitForReady(ctx); err != nil {
		return err
	}

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentOperations)
	for i := range iterations {
		g.Go(func() error {
			r.scenario(ctx, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("wait for scenarios: %w", err)
	}

	attempts := r.attempts.Load()
	failures := r.failures.Load()
	successes := attempts - failures
	successRate := float64(successes) / float64(attempts) * percentageMultiplier
	var avgMillis int64
	if successes > 0 {
		avgMillis = r.durations.Load() / successes
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "stress test completed",
		slog.Int64("attempts", attempts),
		slog.Int64("failures", failures),
		slog.String("success_rate", fmt.Sprintf("%.1f%%", successRate)),
		slog.Int64("avg_millis", avgMillis),
		slog.Duration("elapsed", time.Since(start)))

	if successRate < successRateThreshold {
		return fmt.Errorf("success rate %.1f%% below threshold %.1f%%", successRate, successRateThreshold)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) < 2 {
		logger.LogAttrs(ctx, slog.LevelError, "usage: stresstest <base-url> [iterations]")
		os.Exit(1)
	}
	baseURL := os.Args[1]
	iterations := defaultIterations
	if len(os.Args) > 2 {
		parsed, err := strconv.Atoi(os.Args[2])
		if err != nil || parsed < 1 {
			logger.LogAttrs(ctx, slog.LevelError, "iterations must be a positive integer")
			os.Exit(1)
		}
		iterations = parsed
	}
	ctx = logging.WithAttrs(ctx, slog.String("base_url", baseURL))

	if err := run(ctx, logger, baseURL, iterations); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "stress test failed", slog.Any("error", err))
		os.Exit(1)
	}
}
