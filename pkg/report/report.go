// Package report renders run results for terminals and CI logs.
package report

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/entrhq/pagekit/pkg/scenario"
)

// Format selects how a report is rendered.
type Format string

const (
	// FormatStyled renders with colors and borders for interactive terminals
	FormatStyled Format = "styled"

	// FormatPlain renders unstyled text for CI logs and files
	FormatPlain Format = "plain"
)

// Render produces a report of the run in the requested format.
func Render(result *scenario.RunResult, format Format) string {
	if format == FormatPlain {
		return renderPlain(result)
	}
	return renderStyled(result)
}

// CopyToClipboard places a plain report on the system clipboard.
func CopyToClipboard(result *scenario.RunResult) error {
	if err := clipboard.WriteAll(renderPlain(result)); err != nil {
		return fmt.Errorf("failed to copy report to clipboard: %w", err)
	}
	return nil
}

func statusMark(status scenario.StepStatus) string {
	switch status {
	case scenario.StatusPassed:
		return "✓"
	case scenario.StatusFailed:
		return "✗"
	default:
		return "-"
	}
}

func renderPlain(result *scenario.RunResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Suite: %s (run %s)\n", result.SuiteName, result.ID)

	for _, sc := range result.Scenarios {
		fmt.Fprintf(&b, "\n%s (%v)\n", sc.Name, sc.Duration.Round(timeUnit(sc.Duration)))
		for _, step := range sc.Steps {
			fmt.Fprintf(&b, "  %s %s", statusMark(step.Status), step.Name)
			if step.Status == scenario.StatusPassed || step.Status == scenario.StatusFailed {
				fmt.Fprintf(&b, " (%v)", step.Duration.Round(timeUnit(step.Duration)))
			}
			b.WriteString("\n")
			if step.Status == scenario.StatusFailed {
				fmt.Fprintf(&b, "      error: %v\n", step.Err)
				if step.URL != "" {
					fmt.Fprintf(&b, "      url:   %s\n", step.URL)
				}
			}
		}
	}

	passed, failed, skipped := result.Counts()
	verdict := "PASS"
	if !result.Passed() {
		verdict = "FAIL"
	}
	fmt.Fprintf(&b, "\n%s: %d passed, %d failed, %d skipped in %v\n",
		verdict, passed, failed, skipped, result.Duration.Round(timeUnit(result.Duration)))

	return b.String()
}

func renderStyled(result *scenario.RunResult) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Suite: %s", result.SuiteName)))
	b.WriteString(detailStyle.Render(fmt.Sprintf("  run %s", result.ID)))
	b.WriteString("\n")

	for _, sc := range result.Scenarios {
		b.WriteString("\n")
		b.WriteString(scenarioStyle.Render(sc.Name))
		b.WriteString(detailStyle.Render(fmt.Sprintf(" (%v)", sc.Duration.Round(timeUnit(sc.Duration)))))
		b.WriteString("\n")

		for _, step := range sc.Steps {
			line := fmt.Sprintf("  %s %s", statusMark(step.Status), step.Name)
			switch step.Status {
			case scenario.StatusPassed:
				b.WriteString(passStyle.Render(line))
			case scenario.StatusFailed:
				b.WriteString(failStyle.Render(line))
			default:
				b.WriteString(skipStyle.Render(line))
			}
			b.WriteString("\n")

			if step.Status == scenario.StatusFailed {
				b.WriteString(failStyle.Render(fmt.Sprintf("      error: %v", step.Err)))
				b.WriteString("\n")
				if step.URL != "" {
					b.WriteString(detailStyle.Render(fmt.Sprintf("      url:   %s", step.URL)))
					b.WriteString("\n")
				}
				if step.Snapshot != "" {
					b.WriteString(detailStyle.Render(indent(clip(step.Snapshot, 800), "      ")))
					b.WriteString("\n")
				}
			}
		}
	}

	passed, failed, skipped := result.Counts()
	summary := fmt.Sprintf("%d passed, %d failed, %d skipped in %v",
		passed, failed, skipped, result.Duration.Round(timeUnit(result.Duration)))
	if result.Passed() {
		summary = passStyle.Render("PASS  ") + summary
	} else {
		summary = failStyle.Render("FAIL  ") + summary
	}

	b.WriteString("\n")
	b.WriteString(summaryBoxStyle.Render(summary))
	b.WriteString("\n")

	return b.String()
}
