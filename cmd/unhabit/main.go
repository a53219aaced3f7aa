package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/unhabit-ai/unhabit/internal/api"
	"github.com/unhabit-ai/unhabit/internal/flow"
	"github.com/unhabit-ai/unhabit/internal/genai"
	"github.com/unhabit-ai/unhabit/internal/util"
)

func main() {
	// Load environment configuration
	config := loadEnvironmentConfig()

	// Initialize structured logger
	initializeLogger(config.Debug)

	// Parse command line flags
	flags := parseCommandLineFlags(config)

	// Build the generation engine. Without an API key the server still
	// starts: meta endpoints and the deterministic fallback plan keep
	// working, and generation endpoints report the missing key.
	var engine *flow.Engine
	if *flags.openaiKey != "" {
		client, err := buildGenAIClient(flags)
		if err != nil {
			slog.Error("Failed to initialize OpenAI client", "error", err)
			os.Exit(1)
		}
		engine = flow.NewEngine(client)
	} else {
		slog.Warn("OPENAI_API_KEY not set; running without generation support")
	}

	slog.Info("Bootstrapping Unhabit AI", "api_addr", *flags.apiAddr, "openai_key_set", *flags.openaiKey != "", "debug", config.Debug)
	if err := api.Run(engine, api.WithAddr(*flags.apiAddr), api.WithDebug(config.Debug)); err != nil {
		slog.Error("Unhabit AI failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("Unhabit AI exited successfully")
}

// Config holds environment configuration
type Config struct {
	OpenAIKey string
	JSONModel string
	TextModel string
	APIAddr   string
	Debug     bool
}

// Flags holds command line flag values
type Flags struct {
	openaiKey *string
	jsonModel *string
	textModel *string
	apiAddr   *string
}

// initializeLogger sets up structured logging; debug enables verbose output
func initializeLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		OpenAIKey: os.Getenv("OPENAI_API_KEY"),
		JSONModel: os.Getenv("OPENAI_MODEL_JSON"),
		TextModel: os.Getenv("OPENAI_MODEL_TEXT"),
		APIAddr:   util.GetEnvOrDefault("API_ADDR", api.DefaultAddr),
		Debug:     util.ParseBoolEnv("UNHABIT_DEBUG", false),
	}

	slog.Debug("environment variables loaded",
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"OPENAI_MODEL_JSON", config.JSONModel,
		"OPENAI_MODEL_TEXT", config.TextModel,
		"API_ADDR", config.APIAddr,
		"UNHABIT_DEBUG", config.Debug)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		openaiKey: flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key (overrides $OPENAI_API_KEY)"),
		jsonModel: flag.String("json-model", config.JSONModel, "model for structured stages (overrides $OPENAI_MODEL_JSON)"),
		textModel: flag.String("text-model", config.TextModel, "model for coaching stages (overrides $OPENAI_MODEL_TEXT)"),
		apiAddr:   flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"openaiKeySet", *flags.openaiKey != "",
		"jsonModel", *flags.jsonModel,
		"textModel", *flags.textModel,
		"apiAddr", *flags.apiAddr)

	return flags
}

// buildGenAIClient constructs the OpenAI-backed generation client
func buildGenAIClient(flags Flags) (*genai.Client, error) {
	opts := []genai.Option{genai.WithAPIKey(*flags.openaiKey)}
	if *flags.jsonModel != "" {
		opts = append(opts, genai.WithJSONModel(*flags.jsonModel))
	}
	if *flags.textModel != "" {
		opts = append(opts, genai.WithTextModel(*flags.textModel))
	}
	return genai.NewClient(opts...)
}
