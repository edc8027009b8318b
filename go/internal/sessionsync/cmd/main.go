package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mcdev12/quorum/go/clients/session_client"
	"github.com/mcdev12/quorum/go/internal/sessionsync"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	serverURL := flag.String("server", "", "voting session server URL (defaults to SERVER_URL env or http://localhost:8081)")
	interval := flag.Duration("interval", sessionsync.DefaultPollInterval, "question poll interval")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	baseURL := *serverURL
	if baseURL == "" {
		baseURL = getEnv("SERVER_URL", "http://localhost:8081")
	}

	client := session_client.NewSessionClient(baseURL)
	stdin := bufio.NewReader(os.Stdin)

	// Landing view: create a session or join an existing one by id.
	for {
		fmt.Println()
		fmt.Println("Commands: create | join <sessionId> | quit")
		fmt.Print("> ")

		line, err := stdin.ReadString('\n')
		if err != nil {
			return
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		switch cmd {
		case "create":
			created, err := client.CreateSession(context.Background())
			if err != nil {
				fmt.Printf("Failed to create session: %v\n", err)
				continue
			}
			fmt.Printf("Session created: %s (admin id %s)\n", created.SessionID, created.AdminID)
			runSession(client, created.SessionID, *interval, stdin)
		case "join":
			if arg == "" {
				fmt.Println("Usage: join <sessionId>")
				continue
			}
			runSession(client, arg, *interval, stdin)
		case "quit", "exit":
			return
		case "":
		default:
			fmt.Printf("Unknown command: %s\n", cmd)
		}
	}
}

// runSession is the live session view. It owns a synchronization loop for the
// duration of the visit and returns to the landing view when the loop
// navigates home or the user leaves.
func runSession(client *session_client.SessionClient, sessionID string, interval time.Duration, stdin *bufio.Reader) {
	view := newTerminalView(stdin)

	loop := sessionsync.NewLoop(client, sessionID, view, view, view)
	loop.SetInterval(interval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	fmt.Printf("\nVoting Session: %s\n", sessionID)
	fmt.Println("Commands: list | ask <text> | vote <number> | end | leave")

	for {
		if view.wentHome() {
			return
		}

		snap := loop.Snapshot()
		render(snap)

		fmt.Print("> ")
		line, err := stdin.ReadString('\n')
		if err != nil {
			return
		}
		if view.wentHome() {
			return
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		switch cmd {
		case "list", "":
			// next iteration renders the latest snapshot
		case "ask":
			if err := loop.SubmitQuestion(ctx, arg); errors.Is(err, sessionsync.ErrBlankQuestion) {
				continue
			}
		case "vote":
			index, err := strconv.Atoi(arg)
			if err != nil || index < 1 || index > len(snap.Questions) {
				fmt.Println("Usage: vote <question number>")
				continue
			}
			loop.VoteQuestion(ctx, snap.Questions[index-1].ID)
		case "end":
			loop.EndSession(ctx)
		case "leave":
			return
		default:
			fmt.Printf("Unknown command: %s\n", cmd)
		}
	}
}

func render(snap sessionsync.Snapshot) {
	if snap.Loading {
		fmt.Println("Loading session...")
		return
	}

	if snap.IsAdmin {
		fmt.Println("[admin] You can end this session with 'end'.")
	}

	fmt.Printf("Questions (%d)\n", len(snap.Questions))
	if len(snap.Questions) == 0 {
		fmt.Println("No questions submitted yet. Be the first!")
		return
	}
	for i, q := range snap.Questions {
		fmt.Printf("%2d. [%d votes] %s\n", i+1, q.Votes, q.Text)
	}
}

// terminalView implements the loop's Navigator, Notifier, and Confirmer on a
// terminal. Navigation is recorded as a flag the command loop checks, since
// the loop fires it from its own goroutines.
type terminalView struct {
	stdin  *bufio.Reader
	homeCh chan struct{}
}

func newTerminalView(stdin *bufio.Reader) *terminalView {
	return &terminalView{
		stdin:  stdin,
		homeCh: make(chan struct{}, 1),
	}
}

func (v *terminalView) NavigateHome() {
	select {
	case v.homeCh <- struct{}{}:
	default:
	}
}

func (v *terminalView) wentHome() bool {
	select {
	case <-v.homeCh:
		return true
	default:
		return false
	}
}

func (v *terminalView) Notify(message string) {
	fmt.Printf("\n! %s\n", message)
}

func (v *terminalView) Confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, err := v.stdin.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
