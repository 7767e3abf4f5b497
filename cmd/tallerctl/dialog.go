package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"taller_flota/internal/client/workorder"
)

// terminalDialog asks on stdin and prints notices to stdout.
type terminalDialog struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminalDialog(in io.Reader, out io.Writer) *terminalDialog {
	return &terminalDialog{in: bufio.NewReader(in), out: out}
}

func (d *terminalDialog) Ask(ctx context.Context, p workorder.Prompt) (workorder.DialogResult, error) {
	fmt.Fprintf(d.out, "%s\n%s: ", p.Title, p.Message)
	line, err := d.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return workorder.DialogResult{}, err
	}
	if err == io.EOF && line == "" {
		return workorder.DialogResult{Confirmed: false}, nil
	}
	return workorder.DialogResult{Confirmed: true, Text: strings.TrimRight(line, "\r\n")}, nil
}

func (d *terminalDialog) Notify(ctx context.Context, level workorder.Level, message string) {
	prefix := "ℹ"
	switch level {
	case workorder.LevelWarning:
		prefix = "⚠"
	case workorder.LevelError:
		prefix = "✖"
	}
	fmt.Fprintf(d.out, "%s %s\n", prefix, message)
}
