package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MatthewTroke/neural-decks-client/internal/config"
)

func main() {
	cfg := &config.Config{}

	root := &cobra.Command{
		Use:           "neuraldecks",
		Short:         "Terminal client for neural-decks, a card game with AI-generated decks.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Validate()
		},
	}

	config.Bind(root, cfg)

	root.AddCommand(
		newPlayCmd(cfg),
		newGamesCmd(cfg),
		newLoginCmd(cfg),
		newLogoutCmd(cfg),
		newInviteCmd(cfg),
	)

	root.CompletionOptions.HiddenDefaultCmd = true
	root.SetHelpCommand(&cobra.Command{Hidden: true})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) *zap.SugaredLogger {
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{"stderr"}
	if verbose {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
