package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatstat/internal/parse"
)

func inspectCmd() *cobra.Command {
	var showErrors bool

	cmd := &cobra.Command{
		Use:   "inspect <file|->",
		Short: "Show how a chat export was parsed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(args[0])
			if err != nil && !errors.Is(err, parse.ErrEmptyInput) {
				return err
			}
			defer s.close()

			r := s.result
			format := r.Format
			if format == "" {
				format = "none"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Source:      %s\n", s.export.Name)
			fmt.Fprintf(out, "Format:      %s\n", format)
			fmt.Fprintf(out, "Date order:  %s\n", r.Order)
			fmt.Fprintf(out, "Headers:     %d\n", r.Headers)
			fmt.Fprintf(out, "Messages:    %d\n", len(r.Messages))
			fmt.Fprintf(out, "Users:       %d\n", len(s.table.Users()))
			fmt.Fprintf(out, "Skipped:     %d\n", len(r.Errors))

			if showErrors {
				for _, e := range r.Errors {
					fmt.Fprintf(os.Stderr, "  %v\n", e)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showErrors, "errors", false, "List the headers that could not be parsed")

	return cmd
}
