package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/matheus3301/chatwidget/internal/app"
	"github.com/matheus3301/chatwidget/internal/config"
	"github.com/matheus3301/chatwidget/internal/profile"
	"github.com/matheus3301/chatwidget/internal/store"
	"github.com/matheus3301/chatwidget/internal/widget"
	"github.com/spf13/cobra"
)

// headless mounts the widget for one command.
func headless(cmd *cobra.Command, opts *rootOptions, fn func(*widget.Session) error) error {
	p, err := opts.params()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), headlessTimeout)
	defer cancel()
	return app.Headless(ctx, p, fn)
}

func newContactsCmd(opts *rootOptions) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "List the contacts roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return headless(cmd, opts, func(s *widget.Session) error {
				contacts := s.Contacts()
				out := cmd.OutOrStdout()
				if jsonOut {
					return outputJSON(out, contacts)
				}
				if len(contacts) == 0 {
					_, _ = fmt.Fprintln(out, "No contacts.")
					return nil
				}
				for _, c := range contacts {
					_, _ = fmt.Fprintf(out, "%-4d %-24s %s\n", c.ID, c.DisplayName, c.StatusLabel())
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	return cmd
}

func newThreadCmd(opts *rootOptions) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "thread <contact-id>",
		Short: "Print the conversation with a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseContactID(args[0])
			if err != nil {
				return err
			}
			return headless(cmd, opts, func(s *widget.Session) error {
				msgs, err := s.ThreadWith(id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if jsonOut {
					return outputJSON(out, msgs)
				}
				if len(msgs) == 0 {
					_, _ = fmt.Fprintln(out, "No messages yet.")
					return nil
				}
				names := senderNames(s)
				for _, m := range msgs {
					printMessage(out, names, m)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	return cmd
}

func newSendCmd(opts *rootOptions) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "send <contact-id> <text...>",
		Short: "Send a message through the widget",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseContactID(args[0])
			if err != nil {
				return err
			}
			return headless(cmd, opts, func(s *widget.Session) error {
				s.ToggleOpen()
				if err := s.Select(id); err != nil {
					return err
				}
				s.SetDraft(strings.Join(args[1:], " "))
				res, err := s.Send()
				if err != nil {
					return err
				}
				if !res.Sent {
					return errors.New("message is empty")
				}
				out := cmd.OutOrStdout()
				if jsonOut {
					return outputJSON(out, res.Message)
				}
				printMessage(out, senderNames(s), res.Message)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	return cmd
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the widget config",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default widget config for the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := opts.params()
			if err != nil {
				return err
			}
			path := p.ConfigPath
			if path == "" {
				if err := profile.EnsureDir(p.Profile); err != nil {
					return err
				}
				path = profile.WidgetConfigPath(p.Profile)
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	cmd.AddCommand(initCmd)
	return cmd
}

func parseContactID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid contact id %q", s)
	}
	return id, nil
}

func senderNames(s *widget.Session) map[int64]string {
	names := map[int64]string{s.Identity().ID: "You"}
	for _, c := range s.Contacts() {
		names[c.ID] = c.DisplayName
	}
	return names
}

func printMessage(w io.Writer, names map[int64]string, m store.Message) {
	_, _ = fmt.Fprintf(w, "[%s] %s: %s\n", widget.TimeLabel(m), names[m.SenderID], m.Body)
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
