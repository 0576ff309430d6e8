package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

var ErrNoToken = errors.New("login callback never arrived")

// Loopback is a throwaway HTTP server on 127.0.0.1 that catches the browser
// redirect at the end of OAuth login and hands the minted session token back
// to the terminal. The OAuth exchange itself is entirely between browser and
// game server; this is just the last hop.
type Loopback struct {
	ln  net.Listener
	srv *http.Server
	got chan string
}

func NewLoopback() (*Loopback, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("unable to open loopback listener: %w", err)
	}

	lb := &Loopback{
		ln:  ln,
		got: make(chan string, 1),
	}

	r := chi.NewRouter()
	r.Get("/callback", func(w http.ResponseWriter, req *http.Request) {
		token := req.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing token", http.StatusBadRequest)
			return
		}
		fmt.Fprintln(w, "Logged in. You can close this tab and return to the terminal.")
		select {
		case lb.got <- token:
		default:
		}
	})

	lb.srv = &http.Server{Handler: r}
	go func() { _ = lb.srv.Serve(ln) }()

	return lb, nil
}

// RedirectURI is the address the login request should advertise so the
// provider sends the browser back here.
func (lb *Loopback) RedirectURI() string {
	return fmt.Sprintf("http://%s/callback", lb.ln.Addr().String())
}

// Wait blocks until the callback delivers a token, the timeout elapses, or
// ctx is cancelled.
func (lb *Loopback) Wait(ctx context.Context, timeout time.Duration) (string, error) {
	select {
	case token := <-lb.got:
		return token, nil
	case <-time.After(timeout):
		return "", ErrNoToken
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (lb *Loopback) Close() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return lb.srv.Shutdown(shutdownCtx)
}
