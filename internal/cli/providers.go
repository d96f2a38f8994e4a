package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/critic/internal/config"
	"github.com/dshills/critic/internal/logging"
	"github.com/dshills/critic/internal/providers"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Backend provider management",
}

var providersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the provider chain and credential status",
	Run: func(cmd *cobra.Command, args []string) {
		for _, desc := range providers.DefaultDescriptors() {
			status := "ready"
			if len(desc.CredentialVars) > 0 && !desc.Available() {
				status = "missing credential (" + desc.CredentialVars[0] + ")"
			}
			fmt.Fprintf(os.Stdout, "%s: %s\n", desc.Name, status)
			for _, m := range desc.Models {
				fmt.Fprintf(os.Stdout, "  - %s\n", m)
			}
		}
	},
}

var providersResolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a backend and print the committed binding",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		logging.Init(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: cfg.Logging.Output,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		resolver := providers.NewResolver(providers.Options{
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		})
		resolved := resolver.Resolve(ctx)

		data, err := json.MarshalIndent(resolved.Info(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))

		if resolved.Fallback {
			if resolved.AuthFailure {
				fmt.Fprintln(os.Stderr, "Error: provider credentials were rejected; analysis would run in static fallback mode")
				exitCode = ExitAuthError
				return nil
			}
			fmt.Fprintln(os.Stderr, "WARNING: no remote backend available, analysis will run in static fallback mode")
		}
		return nil
	},
}

func init() {
	providersCmd.AddCommand(providersListCmd)
	providersCmd.AddCommand(providersResolveCmd)
	providersResolveCmd.Flags().StringVar(&flagModel, "model", "", "Model name")
}
