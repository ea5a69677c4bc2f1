package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"tripmate/internal/domain"
	"tripmate/internal/invite"
)

func menuHelp() string {
	opts := make([]string, 0, len(invite.Menu))
	for _, item := range invite.Menu {
		opts = append(opts, string(item.Option))
	}
	return strings.Join(opts, ", ")
}

type Invite struct {
	Trip       int64  `long:"trip" required:"true" description:"Trip id"`
	Expire     string `long:"expire" default:"never" description:"Expiration option: 5, 30, 60, 180, 720, 1440, custom or never"`
	Custom     string `long:"custom" description:"Minutes until expiry, used with --expire custom"`
	Regenerate bool   `long:"regenerate" description:"Generate a new code instead of changing the current one's expiry"`
}

func (c *Invite) Execute(args []string) error {
	logger := opts.logger()
	client := opts.client(logger)
	ctx := context.Background()

	trip, err := client.GetTrip(ctx, c.Trip)
	if err != nil {
		return err
	}

	helper := invite.NewHelper(client, newTerminalToaster(os.Stdout), logger, opts.locale(), trip)

	opt := invite.Option(c.Expire)
	if c.Regenerate {
		_, err = helper.Regenerate(ctx, opt, c.Custom)
	} else {
		_, err = helper.UpdateExpiration(ctx, opt, c.Custom)
	}
	if err != nil {
		if errors.Is(err, invite.ErrUnknownOption) {
			return fmt.Errorf("%w %q, choose one of: %s", err, c.Expire, menuHelp())
		}
		return err
	}

	printInvite(trip.Name, helper.State(), helper.Status(time.Now()))
	return nil
}

func printInvite(tripName string, st invite.State, status invite.Status) {
	color.New(color.Bold).Printf("%s: ", tripName)
	color.New(color.FgGreen, color.Bold).Println(st.Code)

	line := color.New(color.Faint)
	if status.Expired {
		line = color.New(color.FgRed)
	}
	line.Println(status.Text)
}

type Join struct {
	Code string `long:"code" required:"true" description:"Invite code"`
	Name string `long:"name" description:"Display name shown to other members"`
}

func (c *Join) Execute(args []string) error {
	client := opts.client(opts.logger())

	trip, err := client.JoinTrip(context.Background(), c.Code, c.Name)
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Printf("joined %s (trip %d)\n", trip.Name, trip.ID)
	return nil
}

type Share struct {
	Trip  int64  `long:"trip" required:"true" description:"Trip id"`
	Email string `long:"email" required:"true" description:"Recipient address"`
}

func (c *Share) Execute(args []string) error {
	client := opts.client(opts.logger())

	if err := client.SendInviteEmail(context.Background(), c.Trip, c.Email); err != nil {
		return err
	}

	color.New(color.FgGreen).Printf("invite sent to %s\n", c.Email)
	return nil
}

type Activity struct {
	Trip    int64  `long:"trip" required:"true" description:"Trip id"`
	Type    string `long:"type" required:"true" description:"Notification type, e.g. expense_add or chat_message"`
	Title   string `long:"title" required:"true" description:"Notification title"`
	Message string `long:"message" description:"Notification body"`
	Item    string `long:"item" description:"Item name"`
}

func (c *Activity) Execute(args []string) error {
	client := opts.client(opts.logger())

	t := domain.NotificationType(c.Type)
	if !t.IsValid() {
		return fmt.Errorf("unknown notification type %q", c.Type)
	}

	return client.ReportActivity(context.Background(), c.Trip, domain.ActivityInput{
		Type:     t,
		Title:    c.Title,
		Message:  c.Message,
		ItemName: c.Item,
	})
}
