package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recallai/recall/internal/core"
	"github.com/recallai/recall/internal/logger"
)

var (
	chatSystem      string
	chatProvider    string
	chatModel       string
	chatTemperature float64
	chatMaxTokens   int
	chatNoCache     bool
)

var chatCmd = &cobra.Command{
	Use:   "chat [prompt]",
	Short: "Send one chat request through the cache",
	Args:  cobra.ExactArgs(1),
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatSystem, "system", "", "system prompt")
	chatCmd.Flags().StringVar(&chatProvider, "provider", "", "provider name (default from config)")
	chatCmd.Flags().StringVar(&chatModel, "model", "", "model name (default from provider)")
	chatCmd.Flags().Float64Var(&chatTemperature, "temperature", 0, "sampling temperature [0, 2]")
	chatCmd.Flags().IntVar(&chatMaxTokens, "max-tokens", 0, "response token limit")
	chatCmd.Flags().BoolVar(&chatNoCache, "no-cache", false, "bypass the response cache")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	if chatNoCache {
		cfg.Cache.Enabled = false
	}

	a, err := buildApp(cfg, log)
	if err != nil {
		return err
	}

	req := core.ChatRequest{
		SystemPrompt: chatSystem,
		UserPrompt:   args[0],
		Provider:     chatProvider,
		Model:        chatModel,
		MaxTokens:    chatMaxTokens,
	}
	// A flag left at its zero default is not the same as asking for
	// temperature 0.
	if cmd.Flags().Changed("temperature") {
		req.Temperature = core.Float(chatTemperature)
	}

	result, err := a.orch.Chat(cmd.Context(), req)
	if err != nil {
		return err
	}

	fmt.Println(result.Text)
	fmt.Printf("\n[%s/%s cached=%v tokens=%d]\n",
		result.Provider, result.Model, result.Cached, result.Usage.Total())
	return nil
}
