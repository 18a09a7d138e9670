package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func queryCmd() *cobra.Command {
	var (
		queries []string
		html    bool
	)
	cmd := &cobra.Command{
		Use:   "query <graph.json>... [-q text]...",
		Short: "Resolve queries against a graph",
		Long: "Resolve queries against a graph. Without --query, queries are\n" +
			"read one per line from standard input. Type 'help' for the syntax.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l, _, err := openLayer(ctx, args)
			if err != nil {
				return err
			}

			if len(queries) > 0 {
				for _, q := range queries {
					printFeedback(q, l.Query(ctx, q), html)
				}
				return nil
			}

			interactive := isTerminal(os.Stdin)
			scanner := bufio.NewScanner(os.Stdin)
			for {
				if interactive {
					fmt.Print(Brand.Sprint("roadview> "))
				}
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				switch line {
				case "":
					continue
				case "quit", "exit":
					return nil
				}
				printFeedback(line, l.Query(ctx, line), html)
			}
			return scanner.Err()
		},
	}
	cmd.Flags().StringArrayVarP(&queries, "query", "q", nil, "query to resolve (repeatable)")
	cmd.Flags().BoolVar(&html, "html", false, "print the HTML form of results when present")
	return cmd
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
