package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/ha1tch/roadview/pkg/search"
)

var (
	Brand  = color.New(color.FgHiGreen, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// printFeedback writes one query result, coloring the status line.
func printFeedback(query string, fb search.UserFeedback, html bool) {
	status := Good
	if strings.HasPrefix(fb.Status(), "couldn't find") || strings.HasPrefix(fb.Status(), "no ") {
		status = Warn
	}
	fmt.Printf("%s %s\n", Subtle.Sprint(">"), Info.Sprint(query))
	if fb.Status() != "" {
		fmt.Printf("  %s\n", status.Sprint(fb.Status()))
	}
	body := fb.Text()
	if html && fb.HTML() != "" {
		body = fb.HTML()
	}
	if body != "" && body != fb.Status() {
		for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
			fmt.Printf("  %s\n", line)
		}
	}
}

// table prints aligned rows under a dimmed header.
func table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	header, sep := "  ", "  "
	for i, h := range headers {
		header += fmt.Sprintf("%-*s  ", widths[i], h)
		sep += strings.Repeat("─", widths[i]) + "  "
	}
	Subtle.Println(header)
	Subtle.Println(sep)
	for _, row := range rows {
		line := "  "
		for i, cell := range row {
			if i < len(widths) {
				line += fmt.Sprintf("%-*s  ", widths[i], cell)
			}
		}
		fmt.Println(line)
	}
}
