package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/procgen-arcade/internal/registry"
	"github.com/vovakirdan/procgen-arcade/internal/rollout"
	"github.com/vovakirdan/procgen-arcade/internal/storage"
	"github.com/vovakirdan/procgen-arcade/internal/transport/ws"
)

var (
	flagEpisodes  int
	flagMaxSteps  int
	flagRecord    bool
	flagWSAddr    string
	flagStepDelay time.Duration
	flagVerbose   bool
)

var runCmd = &cobra.Command{
	Use:   "run <game>",
	Short: "Play episodes headlessly with a random policy",
	Long: `Run episodes of a game without a terminal UI. A random policy picks one
of the 15 action combos every step. Episode i uses level seed --seed+i.

With --ws the frames are streamed to WebSocket spectators at /ws; use
--step-delay to slow the run down to a watchable pace.

Examples:
  arcade run miner --episodes 100 --seed 7
  arcade run bigfish --mode easy --record
  arcade run miner --ws :8080 --step-delay 100ms`,
	Args: cobra.ExactArgs(1),
	Run:  runRollouts,
}

func init() {
	runCmd.Flags().IntVar(&flagEpisodes, "episodes", 1, "Number of episodes to play")
	runCmd.Flags().IntVar(&flagMaxSteps, "max-steps", 0, "Stop episodes after this many steps (0 = game timeout)")
	runCmd.Flags().BoolVar(&flagRecord, "record", false, "Record finished episodes in the database")
	runCmd.Flags().StringVar(&flagWSAddr, "ws", "", "Serve a WebSocket spectator stream on this address")
	runCmd.Flags().DurationVar(&flagStepDelay, "step-delay", 0, "Pause between steps")
	runCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every episode")
}

func runRollouts(_ *cobra.Command, args []string) {
	gameID := args[0]
	requireGame(gameID)

	if flagEpisodes < 1 {
		fmt.Fprintf(os.Stderr, "Error: --episodes must be at least 1, got %d\n", flagEpisodes)
		os.Exit(1)
	}

	mode := parseModeFlag()
	configureGames(gameID, mode)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade-run",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	env, err := registry.CreateEnv(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := rollout.NewRunner(env, rollout.NewRandomPolicy(seed))
	runner.Mode = string(mode)
	runner.MaxSteps = flagMaxSteps
	runner.StepDelay = flagStepDelay
	runner.Logger = logger

	if flagRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		runner.Recorder = store
	}

	if flagWSAddr != "" {
		spectators := serveSpectators(ctx, flagWSAddr, logger)
		defer spectators.Close()
		runner.Sink = spectators.hub
		fmt.Printf("Spectators: ws://%s/ws\n", flagWSAddr)
	}

	fmt.Printf("Running %d %s episode(s), mode %s, seeds %d..%d\n",
		flagEpisodes, gameID, mode, seed, seed+int64(flagEpisodes)-1)

	sums := make([]rollout.Summary, 0, flagEpisodes)
	for i := range flagEpisodes {
		sum, err := runner.Run(ctx, seed+int64(i))
		if err != nil {
			if errors.Is(err, context.Canceled) {
				fmt.Println("Interrupted.")
				break
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		sums = append(sums, sum)
		fmt.Printf("  #%-4d seed=%-20d steps=%-5d reward=%-6.1f end=%s\n",
			i+1, sum.Seed, sum.Steps, sum.Reward, sum.End)
	}

	tot := rollout.Tally(sums)
	if tot.Episodes == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("Episodes: %d  Cleared: %d  Mean reward: %.2f  Mean steps: %.1f\n",
		tot.Episodes, tot.Completed,
		tot.Reward/float64(tot.Episodes), float64(tot.Steps)/float64(tot.Episodes))
}

// spectatorServer is the HTTP side of a WebSocket spectator hub.
type spectatorServer struct {
	srv    *http.Server
	hub    *ws.Hub
	stop   context.CancelFunc
	logger *log.Logger
}

func serveSpectators(ctx context.Context, addr string, logger *log.Logger) spectatorServer {
	hubCtx, stop := context.WithCancel(ctx)
	hub := ws.NewHub(logger)
	go hub.Run(hubCtx)

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("spectator server", "error", err)
		}
	}()
	logger.Info("spectator stream listening", "addr", addr, "path", "/ws")

	return spectatorServer{srv: srv, hub: hub, stop: stop, logger: logger}
}

// Close stops the hub, gives spectators up to five seconds to receive the
// frames already published, then shuts the HTTP server down.
func (s spectatorServer) Close() {
	s.stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.hub.Wait(ctx); err != nil {
		s.logger.Warn("spectators not flushed", "error", err)
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("spectator server shutdown", "error", err)
	}
}
