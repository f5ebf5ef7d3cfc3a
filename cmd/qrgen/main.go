// qrgen prints a QR code data URL for text given as an argument or on stdin.
//
//	qrgen "https://example.com"
//	echo -n hello | qrgen --format svg --scale 4
//	qrgen -o code.png "Hello QR!"
//	qrgen --json "Hello QR!"
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dmitrymomot/qrdata/pkg/qrcode"
)

const (
	exitFailure = 1
	exitUsage   = 2
)

// usageError marks failures caused by the invocation rather than the system.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }
func (e *usageError) ExitCode() int { return exitUsage }

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(exitFailure)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var (
		format   string
		scale    string
		output   string
		asJSON   bool
		showHelp bool
	)

	flags := pflag.NewFlagSet("qrgen", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.StringVarP(&format, "format", "f", string(qrcode.FormatPNG), "output format: png or svg")
	flags.StringVarP(&scale, "scale", "s", "", "pixels per module, 1 to 50 (default 10)")
	flags.StringVarP(&output, "output", "o", "", "write the raw image to this file instead of printing a data URL")
	flags.BoolVar(&asJSON, "json", false, "print the full result as JSON")
	flags.BoolVarP(&showHelp, "help", "h", false, "show help")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flags)
			return nil
		}
		return &usageError{err: err}
	}
	if showHelp {
		printHelp(stderr, flags)
		return nil
	}
	if output != "" && asJSON {
		return &usageError{err: errors.New("--output and --json are mutually exclusive")}
	}

	text := strings.Join(flags.Args(), " ")
	if flags.NArg() == 0 {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = trimNewline(string(raw))
	}

	req := qrcode.Request{
		Text:            text,
		Format:          format,
		PixelsPerModule: parseScale(scale),
	}

	if output != "" {
		img, err := qrcode.New().Render(req)
		if err != nil {
			return classify(err)
		}
		if err := os.WriteFile(output, img.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		return nil
	}

	res, err := qrcode.Generate(req)
	if err != nil {
		return classify(err)
	}

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	_, err = fmt.Fprintln(stdout, res.DataURL)
	return err
}

func classify(err error) error {
	if errors.Is(err, qrcode.ErrValidation) {
		return &usageError{err: err}
	}
	return err
}

// parseScale treats anything but a decimal integer as absent.
func parseScale(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// trimNewline drops the single line terminator added by echo or a heredoc.
func trimNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

func printHelp(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprintf(w, `Usage: qrgen [flags] [text]

Encodes text as a QR code and prints it as a data URL. Text is read from
stdin when no argument is given.

Flags:
%s`, flags.FlagUsages())
}
