package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatstat/internal/parse"
)

func usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users <file|->",
		Short: "List the user selector options: Overall, then every user sorted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(args[0])
			if err != nil && !errors.Is(err, parse.ErrEmptyInput) {
				return err
			}
			defer s.close()

			for _, u := range s.table.UserOptions() {
				fmt.Fprintln(cmd.OutOrStdout(), u)
			}
			return nil
		},
	}
}
