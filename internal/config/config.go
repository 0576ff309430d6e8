package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	ServerURL string
	Token     string
	TokenFile string
	Verbose   bool
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server URL %q: %w", c.ServerURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server URL must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("server URL has no host")
	}
	return nil
}

// WebSocketURL maps the HTTP base URL onto the game's websocket endpoint.
func (c *Config) WebSocketURL(gameID string) string {
	ws := strings.Replace(c.ServerURL, "http", "ws", 1)
	return fmt.Sprintf("%s/ws/game/%s", strings.TrimRight(ws, "/"), gameID)
}

// GameURL is the browser-facing address of a game, used for invites.
func (c *Config) GameURL(gameID string) string {
	return fmt.Sprintf("%s/game/%s", strings.TrimRight(c.ServerURL, "/"), gameID)
}

// ResolveToken returns the session token from the flag, or from the token
// file when the flag is unset. Neither being present is fine; the client
// then runs as a read-only spectator.
func (c *Config) ResolveToken() (string, error) {
	if c.Token != "" {
		return c.Token, nil
	}
	if c.TokenFile == "" {
		return "", nil
	}
	raw, err := os.ReadFile(c.TokenFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("unable to read token file: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// DefaultTokenFile is where `login` stores the captured session token.
func DefaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".neuraldecks-token"
	}
	return home + "/.neuraldecks-token"
}

// Bind wires flags, NEURALDECKS_* environment variables and an optional
// .env file into cfg on the given command.
func Bind(cmd *cobra.Command, cfg *Config) {
	// A missing .env is not an error; it's purely a dev convenience.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("NEURALDECKS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs := cmd.PersistentFlags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.ServerURL, "server", "s", "http://localhost:8080", "game server base URL (env: NEURALDECKS_SERVER)")
	fs.StringVar(&cfg.Token, "token", "", "session token (env: NEURALDECKS_TOKEN)")
	fs.StringVar(&cfg.TokenFile, "token-file", DefaultTokenFile(), "file holding the session token (env: NEURALDECKS_TOKEN_FILE)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "display additional output (env: NEURALDECKS_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}
