package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatstat/internal/index"
	"github.com/Zuo-Peng/chatstat/internal/parse"
	"github.com/Zuo-Peng/chatstat/internal/stopwords"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config, stopwords, and SQLite FTS5",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}
			defer log.Sync()

			fmt.Println("=== Config ===")
			if cfg.Path == "" {
				fmt.Println("  File: (none, using defaults)")
			} else {
				fmt.Printf("  File: %s (OK)\n", cfg.Path)
			}
			fmt.Printf("  Date order:        %s\n", cfg.DateOrder)
			fmt.Printf("  Media placeholder: %s\n", cfg.MediaPlaceholder)
			fmt.Printf("  Log:               %s/%s\n", cfg.LogLevel, cfg.LogFormat)

			fmt.Println("\n=== Stopwords ===")
			if cfg.StopwordsPath == "" {
				fmt.Printf("  Built-in list: %d words\n", stopwords.Default().Len())
			} else {
				checkFile("List", cfg.StopwordsPath)
				if set, err := stopwords.Load(cfg.StopwordsPath); err != nil {
					fmt.Printf("  Error: %v\n", err)
				} else {
					fmt.Printf("  Words: %d\n", set.Len())
				}
			}

			fmt.Println("\n=== Formats ===")
			fmt.Printf("  %s\n", strings.Join(parse.FormatNames(), ", "))

			fmt.Println("\n=== FTS5 ===")
			probe := parse.NewParser(parse.Options{}, log).Parse("01/01/24, 10:00 - doctor: fts probe\n")
			db, st, err := index.Build(probe.Records(), log)
			if err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
				return nil
			}
			defer db.Close()

			ftsCount, err := db.FTSCount()
			if err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
			} else if ftsCount == st.Indexed {
				fmt.Println("  Status: OK")
			} else {
				fmt.Printf("  Status: MISMATCH (messages=%d, fts=%d)\n", st.Indexed, ftsCount)
			}
			return nil
		},
	}
}

func checkFile(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if info.IsDir() {
		fmt.Printf("  %s: %s (IS A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
