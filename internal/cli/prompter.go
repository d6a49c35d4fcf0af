package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/stayscope/stayscope/internal/model"
)

// Prompter implements the interactive question/answer loop for an
// analysis session: it collects the CSV path and filter criteria and
// renders the results.
type Prompter struct {
	reader *LineReader
	writer io.Writer
}

// NewPrompter creates a prompter over the given reader and writer.
// Nil arguments default to stdin and stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewLineReader(reader),
		writer: writer,
	}
}

// PromptString displays the label and returns the entered line,
// trimmed. A blank answer is returned as the empty string.
func (p *Prompter) PromptString(ctx context.Context, label string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(label)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	return p.reader.ReadLine(ctx)
}

// PromptRequiredString re-prompts until a non-blank answer is given.
func (p *Prompter) PromptRequiredString(ctx context.Context, label string) (string, error) {
	for {
		value, err := p.PromptString(ctx, label)
		if err != nil {
			return "", err
		}
		if value != "" {
			return value, nil
		}
		if _, err := fmt.Fprintln(p.writer, FormatWarning("A value is required.")); err != nil {
			return "", fmt.Errorf("failed to write warning: %w", err)
		}
	}
}

// PromptOptionalFloat returns nil for a blank or unparseable answer.
// Zero is a valid answer, distinct from "unset".
func (p *Prompter) PromptOptionalFloat(ctx context.Context, label string) (*float64, error) {
	value, err := p.PromptString(ctx, label)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}

	v, parseErr := strconv.ParseFloat(value, 64)
	if parseErr != nil {
		slog.Debug("Ignoring unparseable numeric input", "label", label, "input", value)
		if _, err := fmt.Fprintln(p.writer, SubtleStyle.Render("Not a number, leaving unset.")); err != nil {
			return nil, fmt.Errorf("failed to write note: %w", err)
		}
		return nil, nil
	}
	return &v, nil
}

// PromptOptionalInt returns nil for a blank or unparseable answer.
func (p *Prompter) PromptOptionalInt(ctx context.Context, label string) (*int, error) {
	value, err := p.PromptString(ctx, label)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}

	v, parseErr := strconv.Atoi(value)
	if parseErr != nil {
		slog.Debug("Ignoring unparseable numeric input", "label", label, "input", value)
		if _, err := fmt.Fprintln(p.writer, SubtleStyle.Render("Not a number, leaving unset.")); err != nil {
			return nil, fmt.Errorf("failed to write note: %w", err)
		}
		return nil, nil
	}
	return &v, nil
}

// DisplayStatistics renders the filtered count and, when there are
// valid listings, the statistics block with currency values to two
// decimal places.
func (p *Prompter) DisplayStatistics(stats model.Statistics) error {
	header := fmt.Sprintf("%s Filtered listings: %d", ChartIcon, stats.TotalCount)
	if _, err := fmt.Fprintln(p.writer, BoldStyle.Render(header)); err != nil {
		return fmt.Errorf("failed to write filtered count: %w", err)
	}

	if stats.Count == 0 {
		if _, err := fmt.Fprintln(p.writer, FormatWarning("No valid listings (price > 0) to compute statistics.")); err != nil {
			return fmt.Errorf("failed to write empty statistics note: %w", err)
		}
		return nil
	}

	content := fmt.Sprintf("Total considered: %d\n", stats.TotalCount) +
		fmt.Sprintf("Valid listings: %d\n", stats.Count) +
		fmt.Sprintf("Average price per room: $%.2f\n", stats.AvgPricePerRoom) +
		fmt.Sprintf("Average price of valid listings: $%.2f", stats.AvgPriceValidListings)

	if _, err := fmt.Fprintln(p.writer, RenderBox("Statistics", content)); err != nil {
		return fmt.Errorf("failed to write statistics box: %w", err)
	}
	return nil
}

// DisplayRanking renders the top hosts list, or a "no hosts" message
// when the ranking is empty.
func (p *Prompter) DisplayRanking(ranking []model.HostRanking) error {
	if len(ranking) == 0 {
		if _, err := fmt.Fprintln(p.writer, FormatWarning("No hosts found among filtered listings.")); err != nil {
			return fmt.Errorf("failed to write empty ranking note: %w", err)
		}
		return nil
	}

	var b strings.Builder
	for i, entry := range ranking {
		fmt.Fprintf(&b, "%d. Host ID: %s, Listings: %d", i+1, entry.HostID, entry.Count)
		if i < len(ranking)-1 {
			b.WriteByte('\n')
		}
	}

	if _, err := fmt.Fprintln(p.writer, RenderBox("Top Hosts", b.String())); err != nil {
		return fmt.Errorf("failed to write ranking box: %w", err)
	}
	return nil
}

// Writer exposes the underlying writer for one-off styled messages.
func (p *Prompter) Writer() io.Writer {
	return p.writer
}
