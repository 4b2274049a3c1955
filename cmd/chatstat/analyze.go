package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/Zuo-Peng/chatstat/internal/parse"
	"github.com/Zuo-Peng/chatstat/internal/render"
	"github.com/Zuo-Peng/chatstat/internal/stats"
	"github.com/Zuo-Peng/chatstat/internal/tui"
)

func analyzeCmd() *cobra.Command {
	var user string
	var format string
	var width int

	cmd := &cobra.Command{
		Use:   "analyze <file|->",
		Short: "Show the statistics dashboard for a chat export",
		Long: `Parses a WhatsApp chat export (.txt, .zip, or - for stdin) and shows the
dashboard: top statistics, timelines, activity maps, busy users, common
words, emojis and a word cloud.

When stdout is a terminal an interactive dashboard opens; otherwise a plain
text report is written. --format json|yaml writes the dashboard encoded
instead, and always skips the interactive dashboard.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(args[0])
			if errors.Is(err, parse.ErrEmptyInput) {
				defer s.close()
				fmt.Fprintln(os.Stderr, "No messages found in chat export.")
				return nil
			}
			if err != nil {
				return err
			}
			defer s.close()

			selected, err := s.resolveUser(user)
			if err != nil {
				return err
			}

			interactive := !cmd.Flags().Changed("format") && term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
			if interactive {
				// the dashboard runs without the search tab if the index fails
				db, err := s.index()
				if err != nil {
					s.log.Warn("search disabled", zap.Error(err))
					return tui.Run(s.table, nil, s.statsOptions(), selected)
				}
				defer db.Close()
				return tui.Run(s.table, db, s.statsOptions(), selected)
			}

			d, err := stats.Compute(cmd.Context(), s.table, selected, s.statsOptions())
			if err != nil {
				return err
			}
			return render.Write(os.Stdout, d, format, render.ReportOptions{Width: width})
		},
	}

	cmd.Flags().StringVar(&user, "user", stats.Overall, "Analyze one user (default Overall)")
	cmd.Flags().StringVar(&format, "format", render.FormatText, "Output when not interactive: text, json or yaml")
	cmd.Flags().IntVar(&width, "width", 80, "Report width in columns")

	return cmd
}
