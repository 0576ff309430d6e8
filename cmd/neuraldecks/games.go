package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MatthewTroke/neural-decks-client/internal/auth"
	"github.com/MatthewTroke/neural-decks-client/internal/config"
	"github.com/MatthewTroke/neural-decks-client/internal/httpapi"
	"github.com/MatthewTroke/neural-decks-client/internal/render"
)

func newGamesCmd(cfg *config.Config) *cobra.Command {
	games := &cobra.Command{
		Use:   "games",
		Short: "List and create games",
	}

	games.AddCommand(newGamesListCmd(cfg), newGamesCreateCmd(cfg))
	return games
}

func newGamesListCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List games and their current state",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiClient(cfg)
			if err != nil {
				return err
			}

			games, err := api.ListGames(cmd.Context())
			if err != nil {
				return err
			}
			if len(games) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no games yet; try `neuraldecks games create`")
				return nil
			}

			for _, g := range games {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-25s %s  %d/%d players  round %d\n",
					g.ID, g.Name, g.Status, len(g.Players), g.MaxPlayerCount, g.CurrentGameRound)
			}
			return nil
		},
	}
}

func newGamesCreateCmd(cfg *config.Config) *cobra.Command {
	req := httpapi.CreateGameRequest{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a game with an AI-generated deck",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiClient(cfg)
			if err != nil {
				return err
			}

			game, err := api.CreateGame(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created game %s (%s)\n", game.Name, game.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "play it with: neuraldecks play %s\n", game.ID)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&req.Name, "name", "n", "", "game name")
	fs.StringVar(&req.Subject, "subject", "", "deck subject for the AI to riff on")
	fs.IntVar(&req.WinnerCount, "winner-count", 5, "points needed to win")
	fs.IntVar(&req.MaxPlayerCount, "max-players", 8, "player capacity")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func newInviteCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "invite <game-id>",
		Short: "Print a join link and QR code for a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return render.InviteQR(cmd.OutOrStdout(), cfg.GameURL(args[0]))
		},
	}
}

func newLoginCmd(cfg *config.Config) *cobra.Command {
	var provider string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in via the server's OAuth flow and store the session token",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			api := httpapi.NewClient(cfg.ServerURL, "")

			lb, err := auth.NewLoopback()
			if err != nil {
				return err
			}
			defer lb.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "open this URL in your browser to log in:")
			fmt.Fprintln(cmd.OutOrStdout(), api.LoginURL(provider, lb.RedirectURI()))

			token, err := lb.Wait(cmd.Context(), timeout)
			if err != nil {
				return err
			}

			ident, err := auth.ParseIdentity(token)
			if err != nil {
				return err
			}

			if err := os.WriteFile(cfg.TokenFile, []byte(token), 0o600); err != nil {
				return fmt.Errorf("unable to store token: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", ident.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "google", "oauth provider (google or discord)")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "how long to wait for the browser callback")

	return cmd
}

func newLogoutCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Invalidate the session and remove the stored token",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiClient(cfg)
			if err != nil {
				return err
			}

			if err := api.Logout(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "server logout failed: %v\n", err)
			}

			if err := os.Remove(cfg.TokenFile); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("unable to remove token file: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func apiClient(cfg *config.Config) (*httpapi.Client, error) {
	token, err := cfg.ResolveToken()
	if err != nil {
		return nil, err
	}
	return httpapi.NewClient(cfg.ServerURL, token), nil
}
