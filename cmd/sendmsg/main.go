// Command sendmsg submits one contact message from the terminal, going
// through the same form controller as the web page.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/contact"
)

// terminalNotifier prints toasts as coloured lines.
type terminalNotifier struct {
	out io.Writer
}

func (n terminalNotifier) Loading(msg string) string {
	color.New(color.FgYellow).Fprintln(n.out, "… "+msg)
	return uuid.NewString()
}

func (n terminalNotifier) Success(_ string, msg string, _ time.Duration) {
	color.New(color.FgGreen, color.Bold).Fprintln(n.out, "✔ "+msg)
}

func (n terminalNotifier) Error(_ string, msg string, _ time.Duration) {
	color.New(color.FgRed, color.Bold).Fprintln(n.out, "✘ "+msg)
}

func run(ctx context.Context, args []string, out io.Writer, sender contact.Sender) int {
	fs := flag.NewFlagSet("sendmsg", flag.ContinueOnError)
	fs.SetOutput(out)
	endpoint := fs.String("endpoint", envOr("CONTACT_ENDPOINT", "http://127.0.0.1:8080/api/contact"), "contact endpoint URL")
	name := fs.String("name", "", "your name")
	email := fs.String("email", "", "your email")
	message := fs.String("message", "", "the message")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if sender == nil {
		sender = contact.NewHTTPSender(*endpoint)
	}
	ctrl := contact.NewController(sender, terminalNotifier{out: out})
	for field, value := range map[string]string{"name": *name, "email": *email, "message": *message} {
		if err := ctrl.Change(field, value); err != nil {
			fmt.Fprintln(out, err)
			return 2
		}
	}

	if !ctrl.CanSubmit() {
		color.New(color.FgRed).Fprintln(out, "name, email and message are all required")
		return 1
	}

	outcome, err := ctrl.Submit(ctx)
	if err != nil || outcome != contact.Delivered {
		return 1
	}
	return 0
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, nil))
}
