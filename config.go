/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind           string
	bonus          int
	codeLength     int
	itemDelay      time.Duration
	itemsPerRound  int
	port           int
	prefix         string
	profile        bool
	questionDelay  time.Duration
	rateBurst      int
	rateLimit      float64
	sessionTimeout time.Duration
	tlsCert        string
	tlsKey         string
	verbose        bool
	version        bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.codeLength < 3 || c.codeLength > 16 {
		return fmt.Errorf("invalid code length (must be between 3-16 inclusive): %d", c.codeLength)
	}
	if c.itemsPerRound < 1 {
		return fmt.Errorf("invalid items per round (must be at least 1): %d", c.itemsPerRound)
	}
	if c.bonus < 0 {
		return fmt.Errorf("invalid bonus (must not be negative): %d", c.bonus)
	}
	if c.itemDelay < 0 || c.questionDelay < 0 {
		return errors.New("delays must not be negative")
	}
	if c.rateLimit <= 0 || c.rateBurst < 1 {
		return fmt.Errorf("invalid rate limit %v/s with burst %d", c.rateLimit, c.rateBurst)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("BLACKOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "blackout",
		Short:         "Room-based party games played from your phone.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: BLACKOUT_BIND)")
	fs.IntVar(&cfg.bonus, "bonus", 5, "currency granted to every survivor after a targeting round (env: BLACKOUT_BONUS)")
	fs.IntVar(&cfg.codeLength, "code-length", 4, "length of generated room codes (env: BLACKOUT_CODE_LENGTH)")
	fs.DurationVar(&cfg.itemDelay, "item-delay", 3*time.Second, "pause before the next item goes up for bidding (env: BLACKOUT_ITEM_DELAY)")
	fs.IntVar(&cfg.itemsPerRound, "items-per-round", 3, "items auctioned in each bidding round (env: BLACKOUT_ITEMS_PER_ROUND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: BLACKOUT_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: BLACKOUT_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: BLACKOUT_PROFILE)")
	fs.DurationVar(&cfg.questionDelay, "question-delay", 4*time.Second, "pause between an answer and the next question (env: BLACKOUT_QUESTION_DELAY)")
	fs.IntVar(&cfg.rateBurst, "rate-burst", 10, "messages a connection may send in a burst (env: BLACKOUT_RATE_BURST)")
	fs.Float64Var(&cfg.rateLimit, "rate-limit", 5, "sustained messages per second allowed per connection (env: BLACKOUT_RATE_LIMIT)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before empty rooms are removed (env: BLACKOUT_SESSION_TIMEOUT)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: BLACKOUT_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: BLACKOUT_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: BLACKOUT_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: BLACKOUT_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("blackout v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
