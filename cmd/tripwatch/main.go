package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"tripmate/internal/apiclient"
	"tripmate/internal/config"
	"tripmate/internal/pkg/i18n"
)

// Options are shared by every command.
type Options struct {
	URL     string `short:"u" long:"url" env:"TRIPMATE_URL" default:"http://localhost:8080" description:"TripMate server base URL"`
	Token   string `short:"t" long:"token" env:"TRIPMATE_TOKEN" description:"Bearer token for the REST API"`
	Locale  string `short:"l" long:"locale" default:"en" description:"Locale for labels [en, id]"`
	Verbose bool   `short:"v" long:"verbose" description:"Log requests and socket traffic"`
}

var opts Options

// baseLogger writes JSON lines, or colored console lines with --verbose.
func (o *Options) baseLogger() *zap.Logger {
	env := "production"
	if o.Verbose {
		env = "development"
	}
	logger, err := config.NewLogger(&config.Config{Environment: env})
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// logger only lets warnings through unless --verbose is set.
func (o *Options) logger() *zap.Logger {
	logger := o.baseLogger()
	if !o.Verbose {
		logger = logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel))
	}
	return logger
}

func (o *Options) client(logger *zap.Logger) *apiclient.Client {
	return apiclient.New(o.URL, o.Token, nil, logger.Named("api"))
}

func (o *Options) locale() string {
	if o.Locale == "" {
		return i18n.DefaultLocale
	}
	return o.Locale
}

func main() {
	parser := flags.NewParser(&opts, flags.Default)

	commands := []struct {
		name, short, long string
		data              any
	}{
		{"watch", "stream trip notifications",
			"The watch command signs in to the realtime channel and prints every notification as a toast. " +
				"On exit it prints the notifications grouped by day.", &Watch{}},
		{"invite", "manage a trip invite code",
			"The invite command updates the invite code expiration, or regenerates the code with --regenerate.", &Invite{}},
		{"join", "join a trip with an invite code",
			"The join command adds the signed-in user to the trip that owns the invite code.", &Join{}},
		{"share", "e-mail the current invite code",
			"The share command e-mails the trip's current invite code to a friend.", &Share{}},
		{"activity", "report trip activity",
			"The activity command reports an expense, packing or chat event so every member is notified.", &Activity{}},
	}

	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			panic(err)
		}
	}

	if _, err := parser.Parse(); err != nil {
		os.Exit(1)
	}
}
