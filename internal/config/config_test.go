package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "plain http", url: "http://localhost:8080"},
		{name: "https", url: "https://decks.example.com"},
		{name: "websocket scheme rejected", url: "ws://localhost:8080", wantErr: true},
		{name: "missing host", url: "http://", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{ServerURL: tc.url}
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestWebSocketURL(t *testing.T) {
	cfg := Config{ServerURL: "http://localhost:8080"}
	if got, want := cfg.WebSocketURL("g1"), "ws://localhost:8080/ws/game/g1"; got != want {
		t.Errorf("WebSocketURL = %q, want %q", got, want)
	}

	cfg = Config{ServerURL: "https://decks.example.com/"}
	if got, want := cfg.WebSocketURL("g1"), "wss://decks.example.com/ws/game/g1"; got != want {
		t.Errorf("WebSocketURL = %q, want %q", got, want)
	}
}

func TestGameURL(t *testing.T) {
	cfg := Config{ServerURL: "https://decks.example.com"}
	if got, want := cfg.GameURL("g1"), "https://decks.example.com/game/g1"; got != want {
		t.Errorf("GameURL = %q, want %q", got, want)
	}
}

func TestResolveToken(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		cfg := Config{Token: "from-flag", TokenFile: "does-not-matter"}
		got, err := cfg.ResolveToken()
		if err != nil || got != "from-flag" {
			t.Fatalf("ResolveToken() = %q, %v", got, err)
		}
	})

	t.Run("falls back to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token")
		if err := os.WriteFile(path, []byte("from-file\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		cfg := Config{TokenFile: path}
		got, err := cfg.ResolveToken()
		if err != nil || got != "from-file" {
			t.Fatalf("ResolveToken() = %q, %v", got, err)
		}
	})

	t.Run("missing file means spectator", func(t *testing.T) {
		cfg := Config{TokenFile: filepath.Join(t.TempDir(), "nope")}
		got, err := cfg.ResolveToken()
		if err != nil || got != "" {
			t.Fatalf("ResolveToken() = %q, %v; want empty, nil", got, err)
		}
	})
}
