// Package stockplan reads the CSV reports exported from a stock-plan broker
// account: the capital gains report (sales), the releases report (vesting
// events) and the quote history.
//
// The exports are spreadsheets first and data files second: preamble rows,
// footer disclaimers, thousand separators and dollar signs everywhere. The
// loaders here scrub all of that and hand back clean typed records.
package stockplan

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/etnz/rsutax"
	"github.com/etnz/rsutax/date"
	"github.com/shopspring/decimal"
)

// column positions in the broker exports. The reports carry no stable header
// row (the preamble varies by export locale), so positions it is.
const (
	saleDateCol   = 0
	salePriceCol  = 1
	saleSharesCol = 2

	releaseDateCol   = 0
	releasePriceCol  = 5
	releaseSharesCol = 8

	quoteFundCol  = 0
	quoteDateCol  = 1
	quotePriceCol = 2
)

// dateLayouts are the date formats seen across broker exports.
var dateLayouts = []string{"2006-01-02", "01/02/2006", "02-Jan-2006", "Jan 2, 2006"}

func parseDate(s string) (date.Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if on, err := time.Parse(layout, s); err == nil {
			return date.New(on.Date()), nil
		}
	}
	return date.Date{}, fmt.Errorf("unrecognized date %q", s)
}

// cleanNumber strips the currency decoration ($, commas, spaces) off a cell
// and parses what is left.
func cleanNumber(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	return decimal.NewFromString(s)
}

// records reads all CSV rows from r, keeping only those whose dateCol parses
// as a date. That one test drops preamble, footer and blank rows alike.
func records(r io.Reader, dateCol, minFields int) ([][]string, []date.Date, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var rows [][]string
	var days []date.Date
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("cannot read report row: %w", err)
		}
		if len(record) < minFields {
			continue
		}
		day, err := parseDate(record[dateCol])
		if err != nil {
			continue
		}
		rows, days = append(rows, record), append(days, day)
	}
	return rows, days, nil
}

// ImportSales reads a capital gains report: one row per sale with its date,
// unit price and share count.
func ImportSales(r io.Reader) ([]rsutax.SaleTransaction, error) {
	rows, days, err := records(r, saleDateCol, saleSharesCol+1)
	if err != nil {
		return nil, err
	}

	var sales []rsutax.SaleTransaction
	for i, row := range rows {
		price, err := cleanNumber(row[salePriceCol])
		if err != nil {
			return nil, fmt.Errorf("bad sale price on %s: %w", days[i], err)
		}
		shares, err := cleanNumber(row[saleSharesCol])
		if err != nil {
			return nil, fmt.Errorf("bad share count on %s: %w", days[i], err)
		}
		sales = append(sales, rsutax.NewSale(days[i], price, shares))
	}
	if len(sales) == 0 {
		return nil, fmt.Errorf("capital gains report contained no sales")
	}
	return sales, nil
}

// ImportReleases reads a releases report: one row per vesting event with its
// date, acquisition price and shares acquired. Cancelled releases have no
// share count; they are skipped.
func ImportReleases(r io.Reader) ([]rsutax.AcquisitionLot, error) {
	rows, days, err := records(r, releaseDateCol, releaseSharesCol+1)
	if err != nil {
		return nil, err
	}

	var lots []rsutax.AcquisitionLot
	for i, row := range rows {
		shares, err := cleanNumber(row[releaseSharesCol])
		if err != nil {
			continue
		}
		price, err := cleanNumber(row[releasePriceCol])
		if err != nil {
			return nil, fmt.Errorf("bad acquisition price on %s: %w", days[i], err)
		}
		lots = append(lots, rsutax.NewLot(days[i], price, shares))
	}
	if len(lots) == 0 {
		return nil, fmt.Errorf("releases report contained no vesting events")
	}
	return lots, nil
}

// ImportQuotes reads a quote history report into a price series for one
// symbol. Rows for other funds are ignored; the fund cell is a verbose label
// ("GOOG - Alphabet Inc Class C"), so matching is by substring.
//
// An empty history is not an error: harvesting just gets no market price.
func ImportQuotes(r io.Reader, symbol string) (*date.History[float64], error) {
	rows, days, err := records(r, quoteDateCol, quotePriceCol+1)
	if err != nil {
		return nil, err
	}

	history := &date.History[float64]{}
	for i, row := range rows {
		if !strings.Contains(row[quoteFundCol], symbol) {
			continue
		}
		price, err := cleanNumber(row[quotePriceCol])
		if err != nil {
			return nil, fmt.Errorf("bad quote on %s: %w", days[i], err)
		}
		f, _ := price.Float64()
		history.Append(days[i], f)
	}
	return history, nil
}
