package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/popcorn/internal/adapter"
	"github.com/mmcdole/popcorn/internal/adapter/source"
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/session"
	"github.com/mmcdole/popcorn/internal/store"
	"github.com/mmcdole/popcorn/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	// Handle version flag
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("popcorn %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting popcorn", "version", Version)

	// Check if configured
	if !cfg.IsConfigured() {
		return runSetupFlow(cfg, logger)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("popcorn needs an interactive terminal")
	}

	lookup, err := source.NewLookupFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create movie lookup: %w", err)
	}

	// Watch-list storage: bbolt file when persistence is on, memory otherwise
	path := ""
	if cfg.Watchlist.Persist {
		path = cfg.Watchlist.Path
	}
	st, err := store.NewWatchlistStore(path)
	if err != nil {
		return fmt.Errorf("failed to open watch-list: %w", err)
	}
	defer st.Close()

	watched, err := st.Load()
	if err != nil {
		logger.Warn("could not load watch-list, starting empty", "error", err)
		watched = nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := session.New(ctx, session.Options{
		MinQueryLength: cfg.Search.MinQueryLength,
		MaxRating:      cfg.Rating.Max,
		Watched:        watched,
	})
	defer sess.Close()

	model := tui.NewModel(sess, lookup, st, logger)

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI", "persistent", st.Persistent(), "watched", len(watched))

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	if err := st.Save(sess.Watchlist.Entries()); err != nil {
		logger.Error("saving watch-list failed", "error", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow asks for an OMDb API key, checks it, and saves it
func runSetupFlow(cfg *adapter.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to popcorn!")
	fmt.Println()
	fmt.Println("popcorn uses the OMDb API. Get a free key at https://www.omdbapi.com/apikey.aspx")
	fmt.Println()

	for {
		apiKey, err := readAPIKey()
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if apiKey == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		cfg.OMDb.APIKey = apiKey
		lookup, err := source.NewLookupFromConfig(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to create movie lookup: %w", err)
		}

		fmt.Println()
		if err := verifyKeyWithSpinner(lookup); err != nil {
			fmt.Printf("\n✗ Could not verify key: %s\n", domain.UserMessage(err))
			fmt.Println("Please check the key and try again.")
			fmt.Println()
			continue
		}
		break
	}

	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run popcorn again to start the application.")

	return nil
}

// readAPIKey reads the key without echo when stdin is a terminal
func readAPIKey() (string, error) {
	fmt.Print("Enter your OMDb API key: ")

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		keyBytes, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(keyBytes)), nil
	}

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// verifyKeyWithSpinner runs a probe search with a visual spinner. A
// "Movie not found!" style provider answer still proves the key works;
// only network failures and key rejections fail the check.
func verifyKeyWithSpinner(lookup domain.Lookup) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)

	go func() {
		_, err := lookup.SearchByTitle(ctx, "matrix")
		resultCh <- err
	}()

	frames := spinner.Dot.Frames
	frame := 0

	fmt.Printf("\r%s Checking API key...", frames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err != nil && !isKeyAccepted(err) {
				return err
			}
			fmt.Println("✓ API key accepted")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking API key...", frames[frame%len(frames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("key check timed out")
		}
	}
}

// isKeyAccepted reports whether a provider error still implies a valid key
func isKeyAccepted(err error) bool {
	var perr *domain.ProviderError
	if !errors.As(err, &perr) {
		return false
	}
	return !strings.Contains(strings.ToLower(perr.Message), "api key")
}
