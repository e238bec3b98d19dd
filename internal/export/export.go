// Package export renders an order set as text for restaurant staff.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jszwec/csvutil"

	"dinnerconcierge/internal/models"
)

type Format string

const (
	FormatReport Format = "report"
	FormatDigest Format = "digest"
	FormatCSV    Format = "csv"
)

var Formats = []Format{FormatReport, FormatDigest, FormatCSV}

func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(strings.TrimSpace(s)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q (want report, digest or csv)", s)
}

func (f Format) Extension() string {
	if f == FormatCSV {
		return "csv"
	}
	return "txt"
}

// FileName is the download name used for an export made on day at.
func FileName(f Format, at time.Time) string {
	return fmt.Sprintf("Dinner_Order_%s.%s", at.Format("2006-01-02"), f.Extension())
}

const (
	rule     = "===================="
	noChoice = "(not chosen)"
)

func courseName(item *models.MenuItem) string {
	if item == nil {
		return noChoice
	}
	return item.Name
}

// Report is the kitchen printout: one block per person, then a footer with the
// guest count and the time it was generated.
func Report(orders models.OrderSet, at time.Time) string {
	var b strings.Builder
	b.WriteString("DINNER ORDER SUMMARY\n")
	b.WriteString(rule + "\n\n")

	for _, name := range orders.Names() {
		o := orders[name]
		fmt.Fprintf(&b, "[ %s ]\n", o.UserName)
		fmt.Fprintf(&b, "- Soup: %s\n", courseName(o.Soup))
		fmt.Fprintf(&b, "- Appetizer: %s\n", courseName(o.Appetizer))
		fmt.Fprintf(&b, "- Main: %s\n", courseName(o.Main))
		if len(o.ALaCarte) > 0 {
			fmt.Fprintf(&b, "- Add-ons: %s\n", strings.Join(o.AddOnNames(), ", "))
		}
		if o.Notes != "" {
			fmt.Fprintf(&b, "- NOTE: %s\n", o.Notes)
		}
		b.WriteString("\n")
	}

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Total Guests: %d\n", len(orders))
	fmt.Fprintf(&b, "Generated: %s\n", at.Format("2006-01-02 15:04:05"))
	return b.String()
}

// Digest is a shorter, chat friendly rendering with bold names.
func Digest(orders models.OrderSet) string {
	var b strings.Builder
	for _, name := range orders.Names() {
		o := orders[name]
		fmt.Fprintf(&b, "*%s*\n", o.UserName)
		fmt.Fprintf(&b, "Soup: %s\n", courseName(o.Soup))
		fmt.Fprintf(&b, "Appetizer: %s\n", courseName(o.Appetizer))
		fmt.Fprintf(&b, "Main: %s\n", courseName(o.Main))
		if len(o.ALaCarte) > 0 {
			fmt.Fprintf(&b, "Add-ons: %s\n", strings.Join(o.AddOnNames(), ", "))
		}
		if o.Notes != "" {
			fmt.Fprintf(&b, "Note: %s\n", o.Notes)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Guests: %d\n", len(orders))
	return b.String()
}

func records(orders models.OrderSet) []models.OrderRecord {
	out := make([]models.OrderRecord, 0, len(orders))
	for _, name := range orders.Names() {
		o := orders[name]
		record := models.OrderRecord{
			Name:      o.UserName,
			AddOns:    strings.Join(o.AddOnNames(), "; "),
			Notes:     o.Notes,
			Confirmed: o.IsConfirmed,
		}
		if o.Soup != nil {
			record.Soup = o.Soup.Name
		}
		if o.Appetizer != nil {
			record.Appetizer = o.Appetizer.Name
		}
		if o.Main != nil {
			record.Main = o.Main.Name
		}
		out = append(out, record)
	}
	return out
}

// WriteCSV writes one row per person with a header line.
func WriteCSV(w io.Writer, orders models.OrderSet) error {
	writer := csv.NewWriter(w)
	encoder := csvutil.NewEncoder(writer)

	rows := records(orders)
	if len(rows) == 0 {
		if err := encoder.EncodeHeader(models.OrderRecord{}); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	} else if err := encoder.Encode(rows); err != nil {
		return fmt.Errorf("failed to encode orders: %w", err)
	}

	writer.Flush()
	return writer.Error()
}

// Render produces the export in format f.
func Render(f Format, orders models.OrderSet, at time.Time) ([]byte, error) {
	switch f {
	case FormatReport:
		return []byte(Report(orders, at)), nil
	case FormatDigest:
		return []byte(Digest(orders)), nil
	case FormatCSV:
		var buf bytes.Buffer
		if err := WriteCSV(&buf, orders); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown export format %q", f)
}
