package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"award_vetter/awards"
	"award_vetter/config"
	"award_vetter/generator"
	"award_vetter/logger"
)

var (
	configPath string
	listenAddr string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "award-vetter",
	Short:         "Draft and vet military award justifications",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web interface",
	RunE:  runServe,
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print a bcrypt hash for auth.password_hash",
	Long: `Print a bcrypt hash for auth.password_hash.

The password is read from the argument, or from stdin when omitted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHashPassword,
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "path to config file (json, toml or yaml)")
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "http listen address (overrides server.addr)")
	serveCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logs")
	rootCmd.AddCommand(serveCmd, hashPasswordCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	var password string
	if len(args) == 1 {
		password = args[0]
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(hash))
	return nil
}

func catalogFrom(cfg config.Config) *awards.Catalog {
	return awards.New(cfg.Awards, cfg.Roles, cfg.Units)
}

func passwordHash(cfg config.AuthConfig) ([]byte, error) {
	if cfg.PasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(cfg.PasswordHash)); err != nil {
			return nil, fmt.Errorf("auth.password_hash is not a bcrypt hash: %w", err)
		}
		return []byte(cfg.PasswordHash), nil
	}
	return bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
}

// buildLLM returns the primary model, falling back to the secondary model of
// the same provider. llm.timeout bounds each attempt separately. Without an
// API key every call fails with generator.ErrMissingCredential and nothing
// reaches the network.
func buildLLM(ctx context.Context, cfg config.LLMConfig, log *logger.Logger) (generator.LLMClient, error) {
	if cfg.Provider == "mock" {
		return generator.MockLLM{}, nil
	}
	if cfg.APIKey == "" {
		log.Warn("llm api key missing; generation disabled", "provider", cfg.Provider)
		return generator.Unconfigured(), nil
	}

	primary, err := newLLMClient(ctx, cfg, cfg.PrimaryModel)
	if err != nil {
		return nil, err
	}
	var secondary generator.LLMClient
	if cfg.SecondaryModel != "" && cfg.SecondaryModel != cfg.PrimaryModel {
		if secondary, err = newLLMClient(ctx, cfg, cfg.SecondaryModel); err != nil {
			return nil, err
		}
	}
	fallback, err := generator.NewFallbackLLM(primary, secondary, cfg.Timeout, log)
	if err != nil {
		return nil, err
	}
	return fallback, nil
}

func newLLMClient(ctx context.Context, cfg config.LLMConfig, model string) (generator.LLMClient, error) {
	settings := &generator.LLMSettings{
		Provider: cfg.Provider,
		Model:    model,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
	}
	switch cfg.Provider {
	case "gemini":
		c, err := generator.NewGeminiLLMFromConfig(ctx, settings)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "openai", "deepseek":
		// DeepSeek 提供 OpenAI 兼容接口，需填写 base_url。
		c, err := generator.NewOpenAILLMFromConfig(settings)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}
}
