package helpers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
)

// Price renders a decimal price string the way the catalog service stores it.
// Unparseable input is returned as-is so bad data stays visible.
func Price(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "$0.00"
	}
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}
	return fmt.Sprintf("$%.2f", amount)
}

// Date formats the timestamp in the provided layout (defaults to 2006-01-02 15:04 MST).
func Date(ts time.Time, layout string) string {
	if layout == "" {
		layout = "2006-01-02 15:04 MST"
	}
	return ts.In(time.Local).Format(layout)
}

// Relative returns a coarse "time ago" string.
func Relative(ts time.Time) string {
	now := time.Now()
	diff := now.Sub(ts)
	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	}
	if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	}
	return ts.Format("2006-01-02")
}

// Plural appends an "s" unless count is one.
func Plural(count int, noun string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, noun)
	}
	return fmt.Sprintf("%d %ss", count, noun)
}

// NavClass returns sidebar link classes.
func NavClass(active bool) string {
	if active {
		return "flex items-center gap-2 rounded-md bg-slate-900 px-3 py-2 text-sm font-medium text-white shadow-sm"
	}
	return "flex items-center gap-2 rounded-md px-3 py-2 text-sm font-medium text-slate-600 hover:bg-slate-100 hover:text-slate-900"
}

// BadgeClass maps semantic tones to utility classes.
func BadgeClass(tone string) string {
	switch tone {
	case "success":
		return "inline-flex items-center rounded-full bg-emerald-100 px-2 py-1 text-xs font-medium text-emerald-700"
	case "warning":
		return "inline-flex items-center rounded-full bg-amber-100 px-2 py-1 text-xs font-medium text-amber-700"
	case "danger":
		return "inline-flex items-center rounded-full bg-rose-100 px-2 py-1 text-xs font-medium text-rose-700"
	default:
		return "inline-flex items-center rounded-full bg-slate-100 px-2 py-1 text-xs font-medium text-slate-700"
	}
}

// TextComponent returns a templ component that renders plain text.
func TextComponent(value string) templ.Component {
	return Text(value)
}

// TableRows converts [][]string to [][]templ.Component for tables.
func TableRows(rows [][]string) [][]templ.Component {
	result := make([][]templ.Component, 0, len(rows))
	for _, row := range rows {
		cells := make([]templ.Component, 0, len(row))
		for _, col := range row {
			cells = append(cells, Text(col))
		}
		result = append(result, cells)
	}
	return result
}
