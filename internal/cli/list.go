package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewProductsCommand creates the products listing command.
func NewProductsCommand(rootOpts *RootOptions) *cobra.Command {
	var category string
	var featured bool

	cmd := &cobra.Command{
		Use:          "products",
		Short:        "List catalog products",
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

			if rootOpts.JSON {
				return printJSON(cmd, products)
			}
			for _, p := range products {
				if category != "" && p.Category != category {
					continue
				}
				if featured && !p.Featured {
					continue
				}
				stock := "in stock"
				if !p.InStock {
					stock = "out of stock"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%.2f\t%s\t%s\n",
					p.ID, p.Name, p.Price, p.Category, stock)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list this category")
	cmd.Flags().BoolVar(&featured, "featured", false, "only list featured products")

	return cmd
}

// NewMessagesCommand creates the messages listing command.
func NewMessagesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "messages",
		Short:        "List contact messages",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, _, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer records.Close()

			messages, err := records.Messages().GetAll(cmd.Context())
			if err != nil {
				return err
			}

			if rootOpts.JSON {
				return printJSON(cmd, messages)
			}
			for _, m := range messages {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%s\n",
					m.ID, m.Status, m.Email, m.Subject, m.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

// NewSubscribersCommand creates the subscribers listing command.
func NewSubscribersCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "subscribers",
		Short:        "List newsletter subscribers",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, _, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer records.Close()

			subscribers, err := records.Subscribers().GetAll(cmd.Context())
			if err != nil {
				return err
			}

			if rootOpts.JSON {
				return printJSON(cmd, subscribers)
			}
			for _, s := range subscribers {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n",
					s.ID, s.Status, s.Email, s.SubscribedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
