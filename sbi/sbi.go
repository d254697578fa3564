// Package sbi downloads and parses the State Bank of India daily reference
// rates, the TTBR sheets mandated for converting foreign-currency
// transactions.
//
// SBI publishes the sheets as PDFs; the sahilgupta/sbi-fx-ratekeeper project
// archives them as one long CSV per currency, which is what this package
// reads.
package sbi

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/etnz/rsutax"
	"github.com/etnz/rsutax/date"
	"github.com/shopspring/decimal"
)

// column headers in the ratekeeper CSV. The sheet carries TT and bill rates
// for both directions; TT BUY is the one rule 115 wants.
const (
	dateColumn = "DATE"
	rateColumn = "TT BUY"
)

// RawURL rewrites a github.com blob URL into its raw content form. Any other
// URL passes through unchanged, so a config can point straight at a raw file
// or a local mirror.
func RawURL(addr string) string {
	if !strings.Contains(addr, "github.com") {
		return addr
	}
	addr = strings.Replace(addr, "github.com", "raw.githubusercontent.com", 1)
	return strings.Replace(addr, "/blob/", "/", 1)
}

// Fetch downloads the rates CSV from addr and parses it into a table.
//
// The download goes through the daily disk cache: the archive gains one row a
// day, re-downloading it more often is pointless.
func Fetch(addr string) (*rsutax.RateTable, error) {
	addr = RawURL(addr)
	log.Println("Downloading SBI rates:", addr)

	resp, err := rsutax.DailyClient().Get(addr)
	if err != nil {
		return nil, fmt.Errorf("cannot download SBI rates from %q: %w", addr, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("cannot download SBI rates from %q: %s", addr, resp.Status)
	}
	return Parse(resp.Body)
}

// Parse reads the ratekeeper CSV into a table of daily rates.
//
// The first row is the header; DATE and TT BUY columns are located by name so
// column reordering upstream does not break us. Rows with an unparseable date
// or a zero rate are skipped: the archive has a few placeholder rows for days
// the PDF was missing.
func Parse(r io.Reader) (*rsutax.RateTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read SBI rates header: %w", err)
	}
	dateCol, rateCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case dateColumn:
			dateCol = i
		case rateColumn:
			rateCol = i
		}
	}
	if dateCol < 0 || rateCol < 0 {
		return nil, fmt.Errorf("SBI rates header %v has no %q or %q column", header, dateColumn, rateColumn)
	}

	table := rsutax.NewRateTable()
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read SBI rates row: %w", err)
		}
		if len(record) <= dateCol || len(record) <= rateCol {
			continue
		}

		// dates come as "2024-06-28" or "2024-06-28 09:00" depending on era
		fields := strings.Fields(record[dateCol])
		if len(fields) == 0 {
			continue
		}
		day, err := date.Parse(fields[0])
		if err != nil {
			continue
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(record[rateCol]))
		if err != nil || rate.IsZero() {
			continue
		}
		table.Append(day, rate)
	}
	if table.Len() == 0 {
		return nil, fmt.Errorf("SBI rates CSV contained no usable rows")
	}
	return table, nil
}
