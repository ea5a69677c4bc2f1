// Package invite implements the invite-code expiration dialogs: the duration
// menu, expiry display, and the update/regenerate calls.
package invite

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrInvalidDuration = errors.New("custom duration must be a positive whole number of minutes")
	ErrUnknownOption   = errors.New("unknown duration option")
)

type Option string

const (
	Option5m     Option = "5"
	Option30m    Option = "30"
	Option1h     Option = "60"
	Option3h     Option = "180"
	Option12h    Option = "720"
	Option24h    Option = "1440"
	OptionCustom Option = "custom"
	OptionNever  Option = "never"
)

type MenuItem struct {
	Option Option
	Label  string
}

// Menu is the fixed list of choices shown by both invite dialogs.
var Menu = []MenuItem{
	{Option5m, "5 minutes"},
	{Option30m, "30 minutes"},
	{Option1h, "1 hour"},
	{Option3h, "3 hours"},
	{Option12h, "12 hours"},
	{Option24h, "24 hours"},
	{OptionCustom, "Custom"},
	{OptionNever, "Never"},
}

// Resolve translates a menu selection to expiration minutes. nil means the
// code never expires. custom is only read for OptionCustom.
func Resolve(opt Option, custom string) (*int, error) {
	switch opt {
	case OptionNever:
		return nil, nil
	case OptionCustom:
		return parseCustom(custom)
	case Option5m, Option30m, Option1h, Option3h, Option12h, Option24h:
		minutes, _ := strconv.Atoi(string(opt))
		return &minutes, nil
	default:
		return nil, ErrUnknownOption
	}
}

func parseCustom(s string) (*int, error) {
	minutes, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || minutes <= 0 {
		return nil, ErrInvalidDuration
	}
	return &minutes, nil
}
