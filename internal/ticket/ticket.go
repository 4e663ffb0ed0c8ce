// Package ticket assembles the ESC-POS byte stream for a daily weather ticket.
package ticket

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"printweather/internal/escpos"
	"printweather/internal/weather"
)

// Ticket is everything printed on one ticket.
type Ticket struct {
	Forecast weather.Forecast
	Image    []byte // raster command for the weather icon, see escpos.RasterImage
	Date     time.Time

	// UpsideDown wraps the ticket in the upside-down print toggle, so it
	// reads correctly as it comes out of the printer.
	UpsideDown bool
}

// Write emits the ticket to w.
func Write(w io.Writer, t Ticket) error {
	bw := bufio.NewWriter(w)

	if t.UpsideDown {
		_, _ = bw.Write(escpos.UpsideDown(true))
	}

	_, _ = bw.Write(escpos.DoubleSize)
	writeLine(bw, "")
	writeLine(bw, fmt.Sprintf("%d%% (%sh)", t.Forecast.PrecipitationProbability, FormatHours(t.Forecast.PrecipitationHours)))
	writeLine(bw, fmt.Sprintf("Min: %d", t.Forecast.TempMin))
	writeLine(bw, fmt.Sprintf("Max: %d", t.Forecast.TempMax))

	_, _ = bw.Write(t.Image)

	writeLine(bw, "")
	writeLine(bw, FormatDate(t.Date))
	_, _ = bw.Write(escpos.NormalSize)
	_, _ = bw.WriteString("\n\n\n")

	if t.UpsideDown {
		_, _ = bw.Write(escpos.UpsideDown(false))
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write ticket: %w", err)
	}
	return nil
}

// writeLine writes s as ASCII followed by a newline. bufio.Writer keeps the
// first error and reports it on Flush.
func writeLine(w *bufio.Writer, s string) {
	_, _ = w.WriteString(ascii(s))
	_ = w.WriteByte('\n')
}

// ascii replaces every rune outside 7-bit ASCII with '?'.
func ascii(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0x7F {
			out = append(out, '?')
			continue
		}
		out = append(out, byte(r))
	}
	return string(out)
}

// FormatHours prints precipitation hours with at least one decimal, 3 as
// "3.0" and 2.25 as "2.25".
func FormatHours(h float64) string {
	if h == math.Trunc(h) && !math.IsInf(h, 0) {
		return strconv.FormatFloat(h, 'f', 1, 64)
	}
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// FormatDate formats t as "21st Jun 2025".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d%s %s", t.Day(), ordinalSuffix(t.Day()), t.Format("Jan 2006"))
}

func ordinalSuffix(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
