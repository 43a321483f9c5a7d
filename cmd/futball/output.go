package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	sonic "github.com/bytedance/sonic"
	"github.com/fatih/color"
)

var jsonOutput bool

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	okColor    = color.New(color.FgGreen, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
	failColor  = color.New(color.FgRed, color.Bold)
	dimColor   = color.New(color.FgHiBlack)
)

type tone int

const (
	toneNeutral tone = iota
	toneOK
	toneWarn
	toneFail
)

// count is one labelled number of a batch summary.
type count struct {
	label string
	value int
	tone  tone
}

func printJSON(w io.Writer, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printSummary writes a coloured batch summary, or v as JSON with --json.
func printSummary(w io.Writer, title string, dryRun bool, v any, counts ...count) error {
	if jsonOutput {
		return printJSON(w, v)
	}

	if dryRun {
		title += " (dry run)"
	}
	titleColor.Fprintln(w, title)
	for _, c := range counts {
		value := strconv.Itoa(c.value)
		switch {
		case c.value == 0 || c.tone == toneNeutral:
		case c.tone == toneOK:
			value = okColor.Sprint(value)
		case c.tone == toneWarn:
			value = warnColor.Sprint(value)
		case c.tone == toneFail:
			value = failColor.Sprint(value)
		}
		fmt.Fprintf(w, "  %-22s %s\n", c.label+":", value)
	}
	return nil
}

func newTable(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, h := range header {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, h)
	}
	fmt.Fprintln(tw)
	return tw
}

func row(tw *tabwriter.Writer, cells ...any) {
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, c)
	}
	fmt.Fprintln(tw)
}
