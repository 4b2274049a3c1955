package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatstat/internal/render"
)

func previewCmd() *cobra.Command {
	var at int
	var context int
	var query string
	var width int

	cmd := &cobra.Command{
		Use:   "preview <file|->",
		Short: "Preview the conversation around one message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireMessages(openSession(args[0]))
			if err != nil {
				return err
			}
			defer s.close()

			db, err := s.index()
			if err != nil {
				return err
			}
			defer db.Close()

			out, _, err := render.RenderConversation(db, render.Options{
				HitIdx:  at,
				Context: context,
				Width:   width,
				Query:   query,
			})
			if err != nil {
				return err
			}

			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&at, "at", 0, "Index of the message to highlight")
	cmd.Flags().IntVar(&context, "context", 10, "Messages before/after the hit to show")
	cmd.Flags().StringVar(&query, "query", "", "Search query for keyword highlighting")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap lines at this width (0 = no wrap)")

	return cmd
}
