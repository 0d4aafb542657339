package main

import (
	"github.com/spf13/cobra"

	"antisocial-agent/internal/domain"
	"antisocial-agent/internal/usecase"
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate a content plan and start a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

var chatCmd = &cobra.Command{
	Use:   "chat <session-id> <message>",
	Short: "Ask for changes to a session's content plan",
	Args:  cobra.ExactArgs(2),
	RunE:  runChat,
}

var (
	generatePlatform string
	generateAudience string
	generateTone     string
)

type generateResult struct {
	domain.ContentPlan
	SessionID string `json:"session_id"`
}

type chatResult struct {
	Message        string              `json:"message"`
	UpdatedContent *domain.ContentPlan `json:"updated_content"`
}

func init() {
	generateCmd.Flags().StringVarP(&generatePlatform, "platform", "p", domain.PlatformLinkedIn, "Target platform (linkedin, instagram, twitter)")
	generateCmd.Flags().StringVarP(&generateAudience, "audience", "a", "general audience", "Who the content is for")
	generateCmd.Flags().StringVarP(&generateTone, "tone", "t", "professional", "Tone of voice")
	rootCmd.AddCommand(generateCmd, chatCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	svc, done, err := newService(cmd.Context())
	if err != nil {
		return err
	}
	defer done()

	out, err := svc.Generate(cmd.Context(), usecase.GenerateInput{
		Platform: generatePlatform,
		Topic:    args[0],
		Audience: generateAudience,
		Tone:     generateTone,
	})
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), generateResult{ContentPlan: out.Content, SessionID: out.SessionID})
}

func runChat(cmd *cobra.Command, args []string) error {
	svc, done, err := newService(cmd.Context())
	if err != nil {
		return err
	}
	defer done()

	out, err := svc.Chat(cmd.Context(), usecase.ChatInput{SessionID: args[0], Message: args[1]})
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), chatResult{Message: out.Message, UpdatedContent: out.UpdatedContent})
}
