/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"

	"github.com/Seednode/blackout/games"
)

const (
	logDate string        = `2006-01-02T15:04:05.000-07:00`
	timeout time.Duration = 10 * time.Second
)

func securityHeaders(cfg *Config, w http.ResponseWriter) {
	w.Header().Set("Cross-Origin-Embedder-Policy", "require-corp")
	w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
	w.Header().Set("Cross-Origin-Resource-Policy", "same-site")
	w.Header().Set("Permissions-Policy", "geolocation=(), midi=(), sync-xhr=(), microphone=(), camera=(), magnetometer=(), gyroscope=(), fullscreen=(), payment=()")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'")

	if cfg.scheme() == "https" {
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
	}
}

func realIP(r *http.Request) string {
	host, port, _ := net.SplitHostPort(r.RemoteAddr)
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		if net.ParseIP(ip) != nil {
			host = ip
		}
	} else if ip := r.Header.Get("X-Real-IP"); ip != "" {
		if net.ParseIP(ip) != nil {
			host = ip
		}
	}
	if net.ParseIP(host) != nil && strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port != "" {
		return host + ":" + port
	}
	return host
}

// newGames builds one rule set per namespace from the configuration.
func newGames(cfg *Config) []games.Game {
	bidding := games.BiddingRules()
	bidding.ItemsPerRound = cfg.itemsPerRound
	bidding.Bonus = cfg.bonus

	drinking := games.DrinkingRules()
	drinking.ItemsPerRound = cfg.itemsPerRound
	drinking.Bonus = cfg.bonus

	return []games.Game{
		games.NewColorQuiz(),
		games.NewQuestions(games.DefaultQuestions, cfg.questionDelay),
		games.NewAuction(bidding, cfg.itemDelay),
		games.NewAuction(drinking, cfg.itemDelay),
	}
}

func newRouter(cfg *Config, log zerolog.Logger, errs chan<- error) (*httprouter.Router, []*Hub) {
	mux := httprouter.New()

	mux.PanicHandler = func(w http.ResponseWriter, r *http.Request, i any) {
		log.Error().Interface("panic", i).Str("path", r.URL.Path).Msg("SERVE: recovered from panic")

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)
		w.WriteHeader(http.StatusInternalServerError)

		io.WriteString(w, newPage("Server Error", "An error has occurred. Please try again."))
	}

	hubs := make([]*Hub, 0, 4)
	for _, game := range newGames(cfg) {
		hubs = append(hubs, newHub(cfg, log, game))
	}

	mux.GET(cfg.prefix+"/", serveHomePage(cfg, hubs, errs))

	mux.GET(cfg.prefix+"/healthz", serveHealthCheck(cfg, errs))

	mux.GET(cfg.prefix+"/robots.txt", serveRobots(cfg, errs))

	mux.GET(cfg.prefix+"/version", serveVersion(cfg, log, errs))

	if cfg.profile {
		registerProfileHandlers(cfg, mux)
	}

	for _, h := range hubs {
		registerGame(cfg, h, mux)
	}

	return mux, hubs
}

// registerGame sets up routes so that:
//   - $prefix/$kind/ws          → WebSocket for every room of that game
//   - $prefix/$kind/qr/:code    → PNG QR code linking to the room
func registerGame(cfg *Config, h *Hub, mux *httprouter.Router) {
	path := cfg.prefix + "/" + string(h.rooms.Kind())

	mux.GET(path+"/ws", serveWS(h))

	mux.GET(path+"/qr/:code", serveQR(cfg, h))
}

func ServePage(ctx context.Context, cfg *Config, args []string) error {
	var err error

	timeZone := os.Getenv("TZ")
	if timeZone != "" {
		time.Local, err = time.LoadLocation(timeZone)
		if err != nil {
			return err
		}
	}

	log := newLogger(cfg, os.Stderr)

	log.Info().Msgf("START: blackout v%s", releaseVersion)

	cfg.prefix = strings.TrimSuffix(cfg.prefix, "/")

	errs := make(chan error, 64)

	mux, hubs := newRouter(cfg, log, errs)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.bind, strconv.Itoa(cfg.port)),
		Handler:           mux,
		IdleTimeout:       10 * time.Minute,
		ReadTimeout:       timeout,
		ReadHeaderTimeout: timeout,
		WriteTimeout:      timeout,
	}

	for _, h := range hubs {
		go h.rooms.Run(ctx)
	}

	go func() {
		for {
			select {
			case err := <-errs:
				log.Error().Err(err).Msg("SERVE: write failed")
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		var err error
		log.Info().Msgf("SERVE: Listening on %s://%s%s/", cfg.scheme(), srv.Addr, cfg.prefix)
		if cfg.tlsKey != "" && cfg.tlsCert != "" {
			err = srv.ListenAndServeTLS(cfg.tlsCert, cfg.tlsKey)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("SERVE: listener stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	log.Info().Msg("STOP: shut down")

	return nil
}
