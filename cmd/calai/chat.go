package calai

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/ccorchooo/CalAIFree/internal/provider/gemini"
	"github.com/ccorchooo/CalAIFree/internal/store"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const chatApology = "Sorry, something went wrong. Please try again."

// Chat needs no login; the assistant persona does not read user data.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the Cal AI nutrition assistant",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			client, err := newGeminiClient(st)
			if err != nil {
				return err
			}
			session := gemini.NewChatSession(client)

			out := cmd.OutOrStdout()
			cyan := color.New(color.FgCyan, color.Bold)
			fmt.Fprintln(out, "Cal AI chat. Type a question, or 'exit' to leave.")

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					break
				}
				message := strings.TrimSpace(scanner.Text())
				if message == "" {
					continue
				}
				if message == "exit" || message == "quit" {
					break
				}
				cyan.Fprint(out, "Cal AI: ")
				err := session.SendStream(cmd.Context(), message, func(fragment string) error {
					fmt.Fprint(out, fragment)
					return nil
				})
				if err != nil {
					fmt.Fprintln(out, chatApology)
					continue
				}
				fmt.Fprintln(out)
			}
			return scanner.Err()
		})
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
