/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"
	"net/url"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

const qrSize = 320

// joinLink is the address a phone should open to join code.
func joinLink(cfg *Config, r *http.Request, kind, code string) string {
	scheme := cfg.scheme()
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}

	u := url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     cfg.prefix + "/" + kind + "/",
		RawQuery: url.Values{"room": {code}}.Encode(),
	}
	return u.String()
}

// serveQR renders a PNG QR code of the join link for an open room.
func serveQR(cfg *Config, h *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		code := ps.ByName("code")
		if _, ok := h.rooms.Get(code); !ok {
			http.NotFound(w, r)
			return
		}

		png, err := qrcode.Encode(joinLink(cfg, r, string(h.rooms.Kind()), code), qrcode.Medium, qrSize)
		if err != nil {
			h.log.Error().Err(err).Str("room", code).Msg("SERVE: qr generation failed")
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(cfg, w)

		_, _ = w.Write(png)
	}
}
