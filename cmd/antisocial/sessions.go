package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"antisocial-agent/internal/domain"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect stored sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, newest first",
	Args:  cobra.NoArgs,
	RunE:  runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a session and its conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List supported platforms",
	Args:  cobra.NoArgs,
	RunE:  runPlatforms,
}

var sessionsJSON bool

type sessionDetail struct {
	domain.Session
	Conversation []domain.ChatMessage `json:"conversation"`
}

func init() {
	sessionsListCmd.Flags().BoolVar(&sessionsJSON, "json", false, "Print JSON instead of one line per session")
	sessionsCmd.AddCommand(sessionsListCmd, sessionsShowCmd)
	rootCmd.AddCommand(sessionsCmd, platformsCmd)
}

func runSessionsList(cmd *cobra.Command, _ []string) error {
	svc, done, err := newService(cmd.Context())
	if err != nil {
		return err
	}
	defer done()

	list, err := svc.ListSessions(cmd.Context())
	if err != nil {
		return err
	}
	if sessionsJSON {
		return printJSON(cmd.OutOrStdout(), list)
	}
	if len(list) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No sessions found.")
		return nil
	}
	for _, s := range list {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-9s  %s  %s\n",
			s.SessionID, s.Platform, s.CreatedAt.Local().Format("2006-01-02 15:04"), s.Topic)
	}
	return nil
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	svc, done, err := newService(cmd.Context())
	if err != nil {
		return err
	}
	defer done()

	sess, err := svc.GetSession(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	msgs, err := svc.Conversation(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), sessionDetail{Session: sess, Conversation: msgs})
}

func runPlatforms(cmd *cobra.Command, _ []string) error {
	for _, p := range domain.Platforms() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-9s  %s: %s\n           %s; %s\n", p.Key, p.Name, p.Description, p.HashtagCount, p.Focus)
	}
	return nil
}
