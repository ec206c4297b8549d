// Command play is a terminal client for the music trivia game. It
// drives the REST API of a running server, printing round prompts and
// reading guesses from stdin.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tunetrivia/tunetrivia/game/engine"
	"github.com/tunetrivia/tunetrivia/game/service"
)

type apiClient struct {
	baseURL string
	client  *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *apiClient) call(method, path string, body, result interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return err
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "play",
		Usage: "Play music trivia from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "server",
				Value: "http://localhost:8000",
				Usage: "Base URL of the trivia server",
			},
			&cli.StringFlag{
				Name:  "provider",
				Value: "demo",
				Usage: "Song provider: spotify, deezer, demo, custom",
			},
			&cli.StringFlag{
				Name:  "mode",
				Value: "demo",
				Usage: "Selection mode: genre, playlist, artist, demo, custom",
			},
			&cli.StringFlag{
				Name:  "query",
				Usage: "Genre keyword, playlist URL, or artist name",
			},
			&cli.IntFlag{
				Name:  "rounds",
				Value: 5,
				Usage: "Number of rounds to play",
			},
			&cli.StringFlag{
				Name:  "list",
				Usage: "Custom list ID (custom provider only)",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	client := newAPIClient(cmd.String("server"))

	var start service.StartResult
	err := client.call("POST", "/api/game/start", service.StartRequest{
		Provider:     cmd.String("provider"),
		Mode:         cmd.String("mode"),
		Query:        cmd.String("query"),
		NumRounds:    int(cmd.Int("rounds")),
		CustomListID: cmd.String("list"),
	}, &start)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	fmt.Printf("=== MUSIC TRIVIA ===\n")
	fmt.Printf("Session %s | %d rounds | provider %s\n\n", start.SessionID, start.TotalRounds, start.Provider)

	scanner := bufio.NewScanner(os.Stdin)
	prompt := start.Prompt

	for prompt != nil {
		printPrompt(prompt)

		outcome, err := submitFromStdin(client, scanner, start.SessionID)
		if err != nil {
			return err
		}
		if outcome == nil {
			// stdin closed, bail out politely.
			fmt.Println("\nGiving up? Ending session.")
			return client.call("DELETE", "/api/game/session/"+start.SessionID, nil, nil)
		}

		if outcome.GameComplete {
			printFinal(outcome.FinalStats)
			return nil
		}
		prompt = outcome.NextPrompt
	}
	return nil
}

// submitFromStdin plays one full round: up to two guesses with the
// hint printed in between. A nil outcome means stdin was exhausted.
func submitFromStdin(client *apiClient, scanner *bufio.Scanner, sessionID string) (*service.GuessOutcome, error) {
	for {
		fmt.Print("Your guess: ")
		if !scanner.Scan() {
			return nil, scanner.Err()
		}

		var outcome service.GuessOutcome
		err := client.call("POST", "/api/game/guess", map[string]string{
			"session_id": sessionID,
			"guess":      scanner.Text(),
		}, &outcome)
		if err != nil {
			return nil, fmt.Errorf("guess failed: %w", err)
		}

		switch {
		case outcome.Correct:
			fmt.Printf("Correct! +%.1f points (score %.1f)\n\n", outcome.PointsEarned, outcome.TotalScore)
			return &outcome, nil
		case outcome.IsFinalGuess:
			fmt.Printf("Wrong - it was %q (score %.1f)\n\n", outcome.CorrectAnswer, outcome.TotalScore)
			return &outcome, nil
		default:
			fmt.Printf("Wrong. Hint: the artist is %s. One guess left.\n", outcome.ArtistHint)
		}
	}
}

func printPrompt(p *service.RoundPrompt) {
	fmt.Printf("--- Round %d of %d ---\n", p.RoundNumber, p.TotalRounds)
	if p.AlbumName != "" {
		fmt.Printf("Album: %s\n", p.AlbumName)
	}
	if p.ReleaseYear != "" {
		fmt.Printf("Released: %s\n", p.ReleaseYear)
	}
	if p.PreviewURL != "" {
		fmt.Printf("Preview: %s\n", p.PreviewURL)
	}
}

func printFinal(final *engine.FinalStats) {
	fmt.Println("=== GAME COMPLETE ===")
	if final == nil {
		return
	}
	fmt.Printf("Score: %.1f of %d rounds\n", final.Score, final.TotalRounds)
	fmt.Printf("Percentage: %.1f%%\n", final.Percentage)
	fmt.Printf("Rank: %s\n", final.Rank)
}
