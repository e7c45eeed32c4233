// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-debrief/internal/intent"
	"github.com/pdiddy/paper-debrief/internal/reasoning"
)

var intentCmd = &cobra.Command{
	Use:   "intent [prompt]",
	Short: "Show how a prompt is interpreted, optionally saving a profile",
	Long: `Intent extracts the structured interpretation of your prompt: topics,
pain points, and negative keywords. Use it to check what the briefing
will actually filter on, and --save to write a profile file you can
edit by hand and reuse with brief --profile.`,
	RunE: runIntent,
}

func runIntent(cmd *cobra.Command, args []string) error {
	prompt := promptFromFlags(cmd, args)
	if prompt == "" {
		return fmt.Errorf("a prompt is required")
	}

	model, _ := cmd.Flags().GetString("model")
	client := &reasoning.Client{
		APIKey:     loadedSecrets.Get("anthropic-api-key", viper.GetString("reasoning.api_key")),
		Model:      stringOr(model, viper.GetString("reasoning.model"), "claude-sonnet-4-5-20250929"),
		MaxRetries: intOr(viper.GetInt("reasoning.max_retries"), 3),
		HTTPClient: &http.Client{Timeout: 120 * time.Second},
	}

	extracted, err := intent.Extract(context.Background(), client, prompt)
	if err != nil {
		return err
	}

	savePath, _ := cmd.Flags().GetString("save")
	if savePath != "" {
		if err := intent.SaveProfile(savePath, extracted); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote profile %s\n", savePath)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(extracted)
	}

	fmt.Printf("topics:            %s\n", strings.Join(extracted.Topics, ", "))
	fmt.Printf("pain points:       %s\n", strings.Join(extracted.PainPoints, ", "))
	fmt.Printf("negative keywords: %s\n", strings.Join(extracted.NegativeKeywords, ", "))
	return nil
}

func init() {
	intentCmd.Flags().String("prompt", "", "free-text description of what you work on")
	intentCmd.Flags().String("model", "", "reasoning model identifier")
	intentCmd.Flags().String("save", "", "write the extracted intent to a YAML profile file")
	intentCmd.Flags().Bool("json", false, "output the intent as JSON")

	rootCmd.AddCommand(intentCmd)
}
