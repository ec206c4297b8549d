// Command tunetrivia starts the music trivia game server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server against an internal HTTP API
//
// Flags control host/port, debug logging, version output, and optional
// ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/tunetrivia/tunetrivia/api"
	"github.com/tunetrivia/tunetrivia/audio"
	"github.com/tunetrivia/tunetrivia/config"
	"github.com/tunetrivia/tunetrivia/enrich"
	"github.com/tunetrivia/tunetrivia/game/service"
	"github.com/tunetrivia/tunetrivia/game/session"
	"github.com/tunetrivia/tunetrivia/lists"
	"github.com/tunetrivia/tunetrivia/metrics"
	"github.com/tunetrivia/tunetrivia/storage"
	"github.com/tunetrivia/tunetrivia/transport/mcp"
	"github.com/tunetrivia/tunetrivia/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "TuneTrivia Server"
)

// Configuration flags. Empty/zero values defer to config.yaml and
// TRIVIA_* environment variables.
var (
	port         = flag.String("port", "", "HTTP server port (overrides config)")
	host         = flag.String("host", "", "HTTP server host (overrides config)")
	debug        = flag.Bool("debug", false, "Enable debug logging")
	version      = flag.Bool("version", false, "Show version information")
	ngrokEnabled = flag.Bool("ngrok", false, "Enable ngrok tunnel")
	ngrokAuth    = flag.String("ngrok-auth", "", "Ngrok auth token (or use NGROK_AUTHTOKEN env var)")
	ngrokDomain  = flag.String("ngrok-domain", "", "Custom ngrok domain (optional)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [MODE]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Available modes:\n")
		fmt.Fprintf(os.Stderr, "  server, http     Run HTTP server with API, WebSocket, and MCP endpoint (default)\n")
		fmt.Fprintf(os.Stderr, "  stdio-mcp        Run MCP stdio server with internal HTTP server\n")
		fmt.Fprintf(os.Stderr, "  mcp              Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                    # Run HTTP server on the configured port\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -port 9090         # Run HTTP server on port 9090\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s stdio-mcp          # Run MCP stdio server\n", os.Args[0])
	}
}

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	if *debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	args := flag.Args()
	mode := "server"
	if len(args) > 0 {
		mode = args[0]
	}

	log.Printf("Starting %s v%s (mode: %s)", AppName, Version, mode)

	cfg := config.Load()
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != "" {
		cfg.Server.Port = *port
	}

	metrics.Register()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gameService, deps, err := initializeServices(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	switch mode {
	case "stdio-mcp", "mcp-stdio", "mcp":
		runStdioMCP(ctx, gameService, deps)

	case "server", "http":
		runHTTPServer(ctx, cancel, cfg, gameService, deps)

	default:
		log.Fatalf("Unknown mode: %s. Use 'server' (default) or 'stdio-mcp'", mode)
	}
}

// initializeServices wires storage, lists, the metadata library, the
// session manager, and the game service.
func initializeServices(ctx context.Context, cfg *config.Config) (service.GameService, api.Deps, error) {
	store, err := buildStorage(cfg)
	if err != nil {
		return nil, api.Deps{}, fmt.Errorf("failed to create storage backend: %w", err)
	}

	listMgr, err := lists.NewManager(store)
	if err != nil {
		return nil, api.Deps{}, fmt.Errorf("failed to create list manager: %w", err)
	}

	library, err := enrich.NewLibrary(store)
	if err != nil {
		return nil, api.Deps{}, fmt.Errorf("failed to load metadata library: %w", err)
	}

	sessionMgr := session.NewManager()
	sessionMgr.StartSweeper(ctx, cfg.SweepInterval(), cfg.IdleTimeout())

	hub := websocket.NewHub()
	go hub.Run(ctx)

	gameService := service.NewGameService(sessionMgr, listMgr, hub)

	jwtSecret := cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = "change-me-trivia-secret"
		log.Println("Warning: TRIVIA_AUTH_JWT_SECRET not set, using insecure default")
	}

	deps := api.Deps{
		Hub:           hub,
		Lists:         listMgr,
		Library:       library,
		Fetcher:       audio.NewFetcher(15 * time.Second),
		JWTSecret:     []byte(jwtSecret),
		AdminPassword: cfg.Auth.AdminPassword,
		CORSOrigins:   cfg.Server.CORSOrigins,
	}
	return gameService, deps, nil
}

func buildStorage(cfg *config.Config) (storage.Provider, error) {
	switch cfg.Storage.Backend {
	case "", "local":
		return storage.NewLocalProvider(cfg.Storage.DataDir), nil
	case "s3":
		return storage.NewS3Provider(storage.S3Options{
			KeyID:    cfg.Storage.S3.KeyID,
			Secret:   cfg.Storage.S3.AppKey,
			Endpoint: cfg.Storage.S3.Endpoint,
			Region:   cfg.Storage.S3.Region,
			Bucket:   cfg.Storage.S3.Bucket,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled (via flag or environment), it also provisions a public tunnel.
func runHTTPServer(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, gameService service.GameService, deps api.Deps) {
	apiServer := api.NewServer(gameService, deps)

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	baseURL := fmt.Sprintf("http://%s", addr)
	mcpClient := mcp.NewClient(baseURL)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpHandler(mcpClient))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)
		log.Printf("Metrics: http://%s/metrics", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	ngrokShouldRun := *ngrokEnabled
	if !ngrokShouldRun {
		if envEnabled := os.Getenv("NGROK_ENABLED"); envEnabled == "true" || envEnabled == "1" {
			ngrokShouldRun = true
		}
	}
	if ngrokShouldRun {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, mainRouter)
		}()
	}

	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
}

// mcpHandler bridges HTTP POSTs into the MCP server's message loop.
func mcpHandler(mcpClient *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}

// runNgrokTunnel provisions a public tunnel and serves the router
// through it until the context is cancelled.
func runNgrokTunnel(ctx context.Context, handler http.Handler) {
	authToken := *ngrokAuth
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTHTOKEN")
	}
	if authToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	domain := *ngrokDomain
	if domain == "" {
		domain = os.Getenv("NGROK_DOMAIN")
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Printf("Using custom ngrok domain: %s", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Printf("Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// runStdioMCP runs an MCP stdio server. It reuses an external API when
// one is already listening; otherwise it starts an internal HTTP API on
// a random loopback port and targets that.
func runStdioMCP(ctx context.Context, gameService service.GameService, deps api.Deps) {
	externalURL := "http://localhost:8000"
	log.Printf("Checking for external API server at %s...", externalURL)

	var baseURL string
	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Printf("External API server found at %s, using it for MCP", externalURL)
		baseURL = externalURL
	} else {
		log.Printf("No external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			log.Fatalf("Failed to get available port: %v", err)
		}

		internalAddr := listener.Addr().String()
		baseURL = fmt.Sprintf("http://%s", internalAddr)

		apiServer := api.NewServer(gameService, deps)
		httpServer := &http.Server{Handler: apiServer}
		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()
		defer httpServer.Shutdown(context.Background())

		log.Printf("Internal API server listening on %s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Println("Starting MCP stdio server...")
	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		log.Fatalf("MCP stdio server failed: %v", err)
	}
}
