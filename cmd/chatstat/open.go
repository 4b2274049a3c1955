package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatstat/internal/open"
)

func openCmd() *cobra.Command {
	var at int

	cmd := &cobra.Command{
		Use:   "open <file>",
		Short: "Open the export in $EDITOR at a message's line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireMessages(openSession(args[0]))
			if err != nil {
				return err
			}
			defer s.close()

			if !s.export.Plain {
				return fmt.Errorf("%s: only plain text exports can be opened", s.export.Name)
			}
			r, ok := s.table.At(at)
			if !ok {
				return fmt.Errorf("message %d not found (chat has %d)", at, s.table.Len())
			}
			return open.OpenAt(s.export.Name, r.Line)
		},
	}

	cmd.Flags().IntVar(&at, "at", 0, "Index of the message to jump to")

	return cmd
}
