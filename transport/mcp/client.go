package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tunetrivia/tunetrivia/game/engine"
	"github.com/tunetrivia/tunetrivia/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Music Trivia Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Music Trivia Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Guess the song title from its audio preview and album hints. Each round
allows two guesses: a correct first guess scores full credit, a correct
second guess (after the artist hint is revealed) scores half credit.

AVAILABLE TOOLS:
- start_game: Start a game (providers: spotify, deezer, demo, custom)
- submit_guess: Submit a guess for the current round
- get_session: Get session state and the current round prompt
- list_sessions: List all active sessions
- final_stats: Get the final score, percentage, and rank
- end_session: End a session early
- search_songs: Search a provider for songs
- game_instructions: Get the full game rules

Start with the demo provider if you have no API credentials.`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "start_game",
		Description: "Start a new trivia game against a song provider",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"provider": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"spotify", "deezer", "demo", "custom"},
					"description": "Song source to play against",
				},
				"mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"genre", "playlist", "artist", "demo", "custom"},
					"description": "How to select songs",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Genre keyword, playlist URL, or artist name (unused for demo/custom)",
				},
				"num_rounds": map[string]interface{}{
					"type":        "integer",
					"description": "Number of rounds to play (1-50)",
				},
				"custom_list_id": map[string]interface{}{
					"type":        "string",
					"description": "Custom list ID (custom provider only)",
				},
			},
			Required: []string{"provider", "mode", "num_rounds"},
		},
	}, c.handleStartGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "submit_guess",
		Description: "Submit a song title guess for the current round",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"guess": map[string]interface{}{
					"type":        "string",
					"description": "Song title guess (case-insensitive, partial titles accepted)",
				},
			},
			Required: []string{"session_id", "guess"},
		},
	}, c.handleSubmitGuess)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details and the current round prompt for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "final_stats",
		Description: "Get the final score, percentage, and rank for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleFinalStats)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "end_session",
		Description: "End a game session early and get its final stats",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleEndSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "search_songs",
		Description: "Search a provider for songs without starting a game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"provider": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"spotify", "deezer", "demo", "custom"},
					"description": "Song source to search",
				},
				"mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"genre", "playlist", "artist", "demo", "custom"},
					"description": "How to search",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results",
				},
			},
			Required: []string{"provider", "mode", "query"},
		},
	}, c.handleSearchSongs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
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
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

// Tool handlers

func (c *Client) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	numRounds, _ := args["num_rounds"].(float64)

	body := map[string]interface{}{
		"provider":   args["provider"],
		"mode":       args["mode"],
		"num_rounds": int(numRounds),
	}
	if query, ok := args["query"].(string); ok && query != "" {
		body["query"] = query
	}
	if listID, ok := args["custom_list_id"].(string); ok && listID != "" {
		body["custom_list_id"] = listID
	}

	var result service.StartResult
	if err := c.apiCall("POST", "/api/game/start", body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := fmt.Sprintf("Started game: %s\nProvider: %s\nRounds: %d\n\n%s",
		result.SessionID, result.Provider, result.TotalRounds,
		formatPrompt(result.Prompt))
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleSubmitGuess(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	guess, _ := args["guess"].(string)

	body := map[string]string{
		"session_id": sessionID,
		"guess":      guess,
	}

	var outcome service.GuessOutcome
	if err := c.apiCall("POST", "/api/game/guess", body, &outcome); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatOutcome(&outcome)), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var info service.GameSessionInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/game/session/%s", sessionID), nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&info)), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                        `json:"count"`
		Sessions []service.GameSessionInfo `json:"sessions"`
	}
	if err := c.apiCall("GET", "/api/game/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Provider: %s, Round: %d/%d, Created: %s)\n",
			s.SessionID, s.Provider,
			s.Stats.CurrentRound+1, s.Stats.TotalRounds,
			s.CreatedAt.Format("15:04:05"))
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleFinalStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var final engine.FinalStats
	if err := c.apiCall("GET", fmt.Sprintf("/api/game/stats/%s", sessionID), nil, &final); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatFinalStats(&final)), nil
}

func (c *Client) handleEndSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message    string             `json:"message"`
		FinalStats *engine.FinalStats `json:"final_stats"`
	}
	if err := c.apiCall("DELETE", fmt.Sprintf("/api/game/session/%s", sessionID), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := response.Message
	if response.FinalStats != nil {
		result += "\n\n" + formatFinalStats(response.FinalStats)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSearchSongs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	limit, _ := args["limit"].(float64)

	body := map[string]interface{}{
		"provider": args["provider"],
		"mode":     args["mode"],
		"query":    args["query"],
	}
	if limit > 0 {
		body["limit"] = int(limit)
	}

	var response struct {
		Count  int            `json:"count"`
		Tracks []engine.Track `json:"tracks"`
	}
	if err := c.apiCall("POST", "/api/songs/search", body, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Found %d tracks:\n\n", response.Count)
	for _, track := range response.Tracks {
		fmt.Fprintf(&result, "- %s by %s (%s, %s)\n",
			track.Name, track.ArtistNames(), track.Album.Name, track.ReleaseYear())
	}
	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `MUSIC TRIVIA GAME RULES

Each round plays one song. You see the album name, release year, and an
audio preview URL - but not the title or artist.

GUESSING:
- You get two guesses per round.
- Guesses are case-insensitive; leading/trailing spaces are ignored.
- A guess counts as correct when it matches the title exactly or is
  contained in the title (so "bohemian" matches "Bohemian Rhapsody").
- After a wrong first guess, the artist is revealed as a hint.
- After a wrong second guess, the correct answer is revealed and the
  round ends.

SCORING:
- Correct on first guess: full credit (2 display points, 1.0 score).
- Correct on second guess: half credit (1 display point, 0.5 score).
- Wrong both times: zero.

RANKS (by percentage of answered rounds):
- 80%+  MUSIC MASTER
- 60%+  Great job
- 40%+  Not bad
- else  Keep practicing

Use start_game to begin, submit_guess to play, and final_stats when the
game is complete.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatters

func formatPrompt(prompt *service.RoundPrompt) string {
	if prompt == nil {
		return "Game complete - no more rounds."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Round %d of %d\n", prompt.RoundNumber, prompt.TotalRounds)
	if prompt.AlbumName != "" {
		fmt.Fprintf(&b, "Album: %s\n", prompt.AlbumName)
	}
	if prompt.ReleaseYear != "" {
		fmt.Fprintf(&b, "Released: %s\n", prompt.ReleaseYear)
	}
	if prompt.PreviewURL != "" {
		fmt.Fprintf(&b, "Preview: %s\n", prompt.PreviewURL)
	}
	return b.String()
}

func formatOutcome(outcome *service.GuessOutcome) string {
	var b strings.Builder

	if outcome.Correct {
		fmt.Fprintf(&b, "Correct! +%.1f points\n", outcome.PointsEarned)
	} else if outcome.IsFinalGuess {
		fmt.Fprintf(&b, "Wrong. The answer was: %s\n", outcome.CorrectAnswer)
	} else {
		fmt.Fprintf(&b, "Wrong. Hint - the artist is: %s\nOne guess remaining.\n", outcome.ArtistHint)
	}

	fmt.Fprintf(&b, "Score: %.1f (%d/%d rounds answered)\n",
		outcome.Stats.Score, outcome.Stats.QuestionsAnswered, outcome.Stats.TotalRounds)

	if outcome.GameComplete && outcome.FinalStats != nil {
		b.WriteString("\nGAME COMPLETE\n")
		b.WriteString(formatFinalStats(outcome.FinalStats))
	} else if outcome.NextPrompt != nil {
		b.WriteString("\n")
		b.WriteString(formatPrompt(outcome.NextPrompt))
	}
	return b.String()
}

func formatSessionInfo(info *service.GameSessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\nProvider: %s\nCreated: %s\n",
		info.SessionID, info.Provider, info.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Score: %.1f | Round: %d/%d | Answered: %d\n",
		info.Stats.Score, info.Stats.CurrentRound+1, info.Stats.TotalRounds,
		info.Stats.QuestionsAnswered)
	if info.AwaitingSecondGuess {
		b.WriteString("Awaiting second guess (artist hint was revealed)\n")
	}
	if info.Complete {
		b.WriteString("Game complete - use final_stats for the summary\n")
	} else {
		b.WriteString("\n")
		b.WriteString(formatPrompt(info.Prompt))
	}
	return b.String()
}

func formatFinalStats(final *engine.FinalStats) string {
	return fmt.Sprintf("Final score: %.1f of %d rounds\nPercentage: %.1f%%\nRank: %s",
		final.Score, final.TotalRounds, final.Percentage, final.Rank)
}
