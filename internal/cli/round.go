package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newRoundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "round",
		Short: "Round commands",
	}

	cmd.AddCommand(newRoundStartCmd())
	cmd.AddCommand(newRoundGetCmd())
	cmd.AddCommand(newRoundSubmitCmd())
	cmd.AddCommand(newRoundEndCmd())
	cmd.AddCommand(newRoundCancelCmd())

	return cmd
}

func newRoundStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <room-id>",
		Short: "Start the next round (gamemaster only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RoundState
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/rounds/start", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoundGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <room-id> <number>",
		Short: "Show round state, hints, and submissions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseRoundNumber(args[1])
			if err != nil {
				return err
			}

			var result RoundState
			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%s/rounds/%d", args[0], number), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoundSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <room-id> <number> <photo-file>",
		Short: "Submit a photo for the round",
		Long: `Submit a photo for the round.

As the gamemaster this uploads the reference photo and opens the hunter
turn. As a hunter this submits your hunt attempt for scoring.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseRoundNumber(args[1])
			if err != nil {
				return err
			}

			var result map[string]any
			path := fmt.Sprintf("/api/v1/rooms/%s/rounds/%d/photo", args[0], number)
			if err := client.Upload(path, "photo", args[2], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoundEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end <room-id> <number>",
		Short: "End the round and show results",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseRoundNumber(args[1])
			if err != nil {
				return err
			}

			var result RoundResults
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/rounds/%d/end", args[0], number), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoundCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <room-id> <number>",
		Short: "Cancel an in-progress round (gamemaster only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseRoundNumber(args[1])
			if err != nil {
				return err
			}

			if err := client.Delete(fmt.Sprintf("/api/v1/rooms/%s/rounds/%d", args[0], number)); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Round cancelled")
			return nil
		},
	}
}

func parseRoundNumber(arg string) (int, error) {
	number, err := strconv.Atoi(arg)
	if err != nil || number < 1 {
		return 0, fmt.Errorf("round number must be a positive integer")
	}
	return number, nil
}
