package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"noviqueen/internal/domain"
)

// storeStats summarizes the record store contents.
type storeStats struct {
	Products       int `json:"products"`
	Featured       int `json:"featured"`
	OutOfStock     int `json:"outOfStock"`
	Messages       int `json:"messages"`
	UnreadMessages int `json:"unreadMessages"`
	Subscribers    int `json:"subscribers"`
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "stats",
		Short:        "Summarize record store contents",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, _, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer records.Close()

			ctx := cmd.Context()

			products, err := records.Products().GetAll(ctx)
			if err != nil {
				return err
			}
			messages, err := records.Messages().GetAll(ctx)
			if err != nil {
				return err
			}
			subscribers, err := records.Subscribers().GetAll(ctx)
			if err != nil {
				return err
			}

			stats := storeStats{
				Products:    len(products),
				Messages:    len(messages),
				Subscribers: len(subscribers),
			}
			for _, p := range products {
				if p.Featured {
					stats.Featured++
				}
				if !p.InStock {
					stats.OutOfStock++
				}
			}
			for _, m := range messages {
				if m.Status == domain.MessageStatusUnread {
					stats.UnreadMessages++
				}
			}

			if rootOpts.JSON {
				return printJSON(cmd, stats)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "products:     %d (%d featured, %d out of stock)\n",
				stats.Products, stats.Featured, stats.OutOfStock)
			fmt.Fprintf(out, "messages:     %d (%d unread)\n", stats.Messages, stats.UnreadMessages)
			fmt.Fprintf(out, "subscribers:  %d\n", stats.Subscribers)
			return nil
		},
	}
}
