package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Chatbot answers follow-up questions against a fixed dataset summary. It
// holds no conversation memory; the summary is the whole context, which keeps
// answers anchored to the data.
type Chatbot struct {
	llm Completer
	log func(string)
}

// NewChatbot creates a chatbot over the given completer.
func NewChatbot(llm Completer, logFunc func(string)) *Chatbot {
	return &Chatbot{llm: llm, log: logFunc}
}

const chatSystem = "You are a helpful, factual data analyst assistant."

// Answer responds to a single question using only the dataset summary.
func (c *Chatbot) Answer(ctx context.Context, summary, question string) (string, error) {
	prompt := fmt.Sprintf(`Use only the information contained in the dataset summary below to answer the user's question.
If the question cannot be answered from the summary, say you don't have enough information and suggest what data would be helpful.

Dataset summary:
%s

Question:
%s

Answer concisely and clearly, and if helpful include a short next-step suggestion (one line).`, summary, question)

	response, err := c.llm.Complete(ctx, chatSystem, prompt)
	if err != nil {
		if c.log != nil {
			c.log(fmt.Sprintf("[CHAT] answer failed: %v", err))
		}
		return "", err
	}
	return strings.TrimSpace(response), nil
}

// Loop runs the interactive Q&A session until EOF or an exit command.
func (c *Chatbot) Loop(ctx context.Context, summary string, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Chat mode: ask questions about the dataset. Type /exit to quit.")
	if summary != "" {
		fmt.Fprintln(out, "Dataset summary (used as context):")
		fmt.Fprintln(out, summary)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\nYou: ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		switch strings.ToLower(question) {
		case "/exit", "exit", "quit":
			fmt.Fprintln(out, "Exiting chat.")
			return nil
		}

		answer, err := c.Answer(ctx, summary, question)
		if err != nil {
			fmt.Fprintf(out, "\nError generating answer: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "\n%s\n", answer)
	}
	return scanner.Err()
}
