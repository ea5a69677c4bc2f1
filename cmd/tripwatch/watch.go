package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"tripmate/internal/domain"
	"tripmate/internal/notify"
	"tripmate/internal/session"
)

type Watch struct {
	User  int64 `long:"user" required:"true" description:"User id to receive notifications for"`
	Quiet bool  `short:"q" long:"quiet" description:"Send toasts to the log instead of the terminal"`
}

// recentCount matches the bell popover.
const recentCount = 5

func (w *Watch) Execute(args []string) error {
	logger := opts.logger()
	client := opts.client(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var toaster notify.Toaster = newTerminalToaster(os.Stdout)
	if w.Quiet {
		toaster = notify.NewLogToaster(opts.baseLogger().Named("toast"))
	}

	dial := session.WebSocketDialer(client.WebSocketURL(), opts.Token, logger.Named("realtime"))
	s, err := session.Open(ctx, w.User, dial, toaster, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	bell := color.New(color.Faint)
	unwatch := s.Store.Watch(func() {
		if n := s.Store.UnreadCount(); n > 0 && !w.Quiet {
			bell.Printf("🔔 %d unread\n", n)
		}
	})
	defer unwatch()

	color.New(color.Faint).Printf("watching notifications for user %d, Ctrl-C to stop\n", w.User)

	select {
	case <-ctx.Done():
	case <-s.Done():
		color.New(color.FgYellow).Println("connection closed by server")
	}

	unwatch()
	printNotifications(os.Stdout, s.Store, time.Now(), opts.locale())
	s.Store.MarkAllAsRead()
	return nil
}

func printNotifications(out io.Writer, store *notify.Store, now time.Time, locale string) {
	list := store.Notifications()
	if len(list) == 0 {
		return
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	fmt.Fprintln(out)
	bold.Fprintf(out, "%d notifications, %d unread\n", len(list), store.UnreadCount())

	fmt.Fprintln(out)
	bold.Fprintln(out, "Recent")
	for _, n := range store.Recent(recentCount) {
		printNotification(out, faint, n)
	}

	for _, group := range notify.GroupByDay(list, now, time.Local, locale) {
		fmt.Fprintln(out)
		bold.Fprintln(out, group.Label)
		for _, n := range group.Notifications {
			printNotification(out, faint, n)
		}
	}
}

func printNotification(out io.Writer, faint *color.Color, n domain.Notification) {
	style := notify.StyleFor(n.Type)
	c := color.New(terminalColor(style.Color))

	if ts, err := notify.ParseTimestamp(n.Timestamp, time.Local); err == nil {
		faint.Fprintf(out, "  %s ", ts.Local().Format("15:04"))
	} else {
		fmt.Fprint(out, "        ")
	}
	fmt.Fprintf(out, "%s ", style.Emoji)
	c.Fprint(out, n.Title)
	if n.Message != "" {
		fmt.Fprintf(out, ": %s", n.Message)
	}
	fmt.Fprintln(out)
}

var terminalColors = map[string]color.Attribute{
	"blue":   color.FgBlue,
	"green":  color.FgGreen,
	"yellow": color.FgYellow,
	"red":    color.FgRed,
	"purple": color.FgMagenta,
	"teal":   color.FgCyan,
}

func terminalColor(name string) color.Attribute {
	if c, ok := terminalColors[name]; ok {
		return c
	}
	return color.FgWhite
}
