package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"

	"smart-todo-client/config"
)

// calendarTokenPath is where gcalendar looks for the token of installed-app credentials.
const calendarTokenPath = "token.json"

func calendarAuthCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar-auth [credentials.json]",
		Short: "Authorize Google Calendar once and write token.json",
		Long: `calendar-auth runs the OAuth consent flow for installed-app credentials.
Open the printed URL, sign in, paste the authorization code back, and the token
is written to token.json in the working directory. Service account credentials
need no token.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			credsPath := ""
			if len(args) == 1 {
				credsPath = args[0]
			} else {
				cfg, err := config.Load(*configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				credsPath = cfg.GoogleCalendar.CredentialsPath
			}
			if credsPath == "" {
				return errors.New("no credentials file: pass one or set google_calendar.credentials_path")
			}
			return calendarAuth(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), credsPath, calendarTokenPath)
		},
	}
}

func calendarAuth(ctx context.Context, in io.Reader, out io.Writer, credsPath, tokenPath string) error {
	data, err := os.ReadFile(credsPath)
	if err != nil {
		return fmt.Errorf("read credentials file %q: %w", credsPath, err)
	}

	oauthConfig, err := google.ConfigFromJSON(data, calendar.CalendarEventsScope)
	if err != nil {
		return fmt.Errorf("parse credentials (want OAuth desktop app credentials): %w", err)
	}

	fmt.Fprintln(out, "1. Open this URL and sign in with your Google account:")
	fmt.Fprintln(out)
	fmt.Fprintln(out, oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline))
	fmt.Fprintln(out)
	fmt.Fprint(out, "2. Paste the authorization code and press Enter: ")

	code, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read authorization code: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return errors.New("empty authorization code")
	}

	tok, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}
	if err := saveToken(tokenPath, tok); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nToken saved to %s. Restart the server to enable the calendar mirror.\n", tokenPath)
	return nil
}

func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
