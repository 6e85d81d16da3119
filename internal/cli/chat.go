package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kalil1010/ai-stylist/internal/recommend"
)

var (
	chatImage   string
	chatColours []string
	chatGender  string
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk to the stylist",
	Long: `Chat with the stylist model. With a message argument a single reply is
printed; without one, lines are read from standard input until EOF and the
conversation history is kept between turns.

Examples:
  stylist chat "What shoes go with olive chinos?"
  stylist chat --image jacket.jpg`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatImage, "image", "", "garment photo whose colours the stylist should know about")
	chatCmd.Flags().StringSliceVar(&chatColours, "colors", nil, "garment colours as hex values")
	chatCmd.Flags().StringVar(&chatGender, "gender", "", "wearer's gender")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	logger := newLogger(cmd, cfg)
	ctx := cmd.Context()

	res, err := garmentAnalysis(ctx, logger, chatImage, chatColours)
	if err != nil {
		return err
	}
	var imageColours []string
	if res != nil {
		imageColours = res.DominantHexes
	}
	var profile *recommend.Profile
	if chatGender != "" {
		profile = &recommend.Profile{Gender: chatGender}
	}

	client, err := newStylist(ctx, cfg, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		reply, err := client.Chat(ctx, recommend.ChatRequest{Message: args[0], ImageColors: imageColours, Profile: profile})
		if err != nil {
			return err
		}
		fmt.Fprintln(out, reply)
		return nil
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	var history []recommend.Message
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		if interactive {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}

		reply, err := client.Chat(ctx, recommend.ChatRequest{
			History:     history,
			Message:     message,
			ImageColors: imageColours,
			Profile:     profile,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n\n", reply)
		history = append(history,
			recommend.Message{Role: "user", Text: message},
			recommend.Message{Role: "model", Text: reply},
		)
	}
	return scanner.Err()
}
