package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/chatstat/internal/search"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorBlue    = "\033[1;34m"
	sColorDim     = "\033[2m"
)

func colorizeSnippet(snippet string, color bool) string {
	if !color {
		snippet = strings.ReplaceAll(snippet, ">>>", "")
		return strings.ReplaceAll(snippet, "<<<", "")
	}
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	snippet = strings.ReplaceAll(snippet, "<<<", sColorReset)
	return snippet
}

func searchCmd() *cobra.Command {
	var user, since string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <file|-> <query>",
		Short: "Full-text search across the messages of a chat export",
		Long: `Search the messages of a chat export using FTS5. Output is TSV for fzf integration:
  index, line, time, user, snippet

Recommended shell function (add to .zshrc):
  chatf() {
    chatstat search "$1" "$2" | fzf \
      --ansi \
      --delimiter='\t' --with-nth=3.. \
      --preview "chatstat preview '$1' --at {1} --context 5 --query {q}" \
      --preview-window=right:60%:wrap \
      --bind "enter:execute(chatstat open '$1' --at {1})"
  }`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireMessages(openSession(args[0]))
			if err != nil {
				return err
			}
			defer s.close()

			selected, err := s.resolveUser(user)
			if err != nil {
				return err
			}

			db, err := s.index()
			if err != nil {
				return err
			}
			defer db.Close()

			results, err := search.Search(db, search.Options{
				Query: args[1],
				User:  selected,
				Since: since,
				Limit: limit,
			})
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			color := term.IsTerminal(int(os.Stdout.Fd()))
			for _, r := range results {
				snippet := strings.ReplaceAll(r.Snippet, "\t", " ")
				snippet = strings.ReplaceAll(snippet, "\n", " ")
				snippet = colorizeSnippet(snippet, color)
				author := r.User
				ts := r.Ts
				if color {
					author = sColorBlue + author + sColorReset
					ts = sColorDim + ts + sColorReset
				}
				// first two fields (index, line) stay plain for fzf {1} {2}
				fmt.Printf("%d\t%d\t%s\t%s\t%s\n", r.Idx, r.Line, ts, author, snippet)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Only messages by this user")
	cmd.Flags().StringVar(&since, "since", "", "Only messages sent since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")

	return cmd
}
