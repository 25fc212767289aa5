package render

import (
	"fmt"
	"strings"

	"github.com/evgenii/bitbar-trademan/internal/observe"
)

// Menu bar glyphs per status.
const (
	glyphGrow = "↑"
	glyphFall = "↓"
	glyphOK   = "·"
	glyphWarn = "⚠"
)

// Dropdown row colors, BitBar parameter syntax.
const (
	colorGrow = "green"
	colorFall = "red"
	colorFlag = "orange"
)

// Title builds the single menu-bar line for a batch.
func Title(batch observe.Batch) string {
	if batch.ConnectionLost {
		return glyphWarn + " exmo: no feed"
	}
	if len(batch.Reports) == 0 {
		return glyphWarn + " exmo: empty watchlist"
	}

	parts := make([]string, 0, len(batch.Reports))
	for _, report := range batch.Reports {
		parts = append(parts, titlePart(report))
	}
	return strings.Join(parts, "  ")
}

func titlePart(report observe.Report) string {
	if report.Outcome == observe.OutcomeNotFound {
		return report.Pair.Symbol() + " ?"
	}

	state := report.State
	if !state.Value.Valid {
		return report.Pair.Symbol() + " " + glyphOK
	}

	glyph := glyphOK
	switch state.Status {
	case observe.StatusGrow:
		glyph = glyphGrow
	case observe.StatusFall:
		glyph = glyphFall
	}

	part := fmt.Sprintf("%s %s%s%%", report.Pair.Symbol(), glyph, state.Value.Decimal.StringFixed(3))
	if state.Highlight {
		part += "!"
	}
	return part
}

// Dropdown builds the BitBar dropdown body: per-pair sections with one
// row per target, plus the last-trade line when a ticker is present.
func Dropdown(batch observe.Batch) string {
	var b strings.Builder

	if batch.ConnectionLost {
		b.WriteString("connection lost")
		if batch.Err != nil {
			fmt.Fprintf(&b, " | tooltip=%s", batch.Err)
		}
		b.WriteString("\n")
		return b.String()
	}

	for i, report := range batch.Reports {
		if i > 0 {
			b.WriteString("---\n")
		}

		if report.Outcome == observe.OutcomeNotFound {
			fmt.Fprintf(&b, "%s: not found | color=gray\n", report.Pair.Symbol())
			continue
		}

		fmt.Fprintf(&b, "%s last %s high %s low %s\n",
			report.Pair.Symbol(),
			report.Ticker.LastTrade,
			report.Ticker.High,
			report.Ticker.Low,
		)

		for _, target := range report.State.Targets {
			row := fmt.Sprintf("%s: %s%%", target.Label, target.Deviation.StringFixed(3))
			if target.Flagged {
				row += " | color=" + flagColor(target)
			}
			b.WriteString(row + "\n")
		}
	}

	return b.String()
}

// Render produces the full plugin output: title, separator, dropdown.
func Render(batch observe.Batch) string {
	return Title(batch) + "\n---\n" + Dropdown(batch)
}

func flagColor(target observe.TargetSignal) string {
	switch {
	case target.Deviation.IsPositive():
		return colorGrow
	case target.Deviation.IsNegative():
		return colorFall
	default:
		return colorFlag
	}
}
