package cmd

import (
	"fmt"
	"io"
	"log"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders markdown for the terminal, and falls back to the raw
// markdown if it cannot be rendered.
func printMarkdown(w io.Writer, md string) {
	if *plain {
		fmt.Fprintln(w, md)
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(w, out)
			return
		}
	}
	log.Printf("cannot render markdown: %v", err)
	fmt.Fprintln(w, md)
}
