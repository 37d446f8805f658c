// Package agent implements an AI assistant, backed by Gemini, that answers
// questions about a portfolio.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
}

// New creates a new Agent writing to 'w' and reading the user's questions from 'r'.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Agent{
		w:           w,
		r:           br,
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
	}
}

// Start opens a chat with every expert.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const prompt = "assist> "

// IsQuit returns true for the inputs that end a session.
func IsQuit(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "bye", "back", "exit", "quit":
		return true
	}
	return false
}

// Run runs the question and answer loop until the user says bye or the input
// ends. 'render' prints the answers, which are markdown.
func (a *Agent) Run(ctx context.Context, client *genai.Client, render func(string)) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Ask anything about your portfolio. Type 'bye' to go back to the menu.")
	for {
		fmt.Fprint(a.w, prompt)
		input, err := a.r.ReadString('\n')
		if err != nil && (err != io.EOF || input == "") {
			if err == io.EOF {
				return nil // Clean exit on Ctrl+D
			}
			return err
		}
		if IsQuit(input) {
			return nil
		}
		if strings.TrimSpace(input) == "" {
			continue
		}

		content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		if content == nil || len(content.Parts) == 0 {
			continue
		}
		render(content.Parts[0].Text)
	}
}
