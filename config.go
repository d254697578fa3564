package rsutax

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Config carries the static tax configuration for one fiscal year, plus the
// data-source settings. Values default to FY 2024-25.
type Config struct {
	// OtherIncome is the estimated income from other sources (salary…),
	// needed for an accurate surcharge slab.
	OtherIncome Money `json:"other_income"`

	TaxRates TaxRates        `json:"tax_rates"`
	Slabs    []SurchargeSlab `json:"surcharge_slabs"`

	// RatesURL points at the SBI reference-rates CSV.
	RatesURL string `json:"ttbr_rates_url"`

	// Symbol filters the quote history to the granted security.
	Symbol string `json:"symbol"`
}

// DefaultRatesURL is the community-maintained archive of SBI's daily TTBR sheets.
const DefaultRatesURL = "https://github.com/sahilgupta/sbi-fx-ratekeeper/blob/main/csv_files/SBI_REFERENCE_RATES_USD.csv"

// DefaultConfig returns the FY 2024-25 configuration.
func DefaultConfig() Config {
	return Config{
		OtherIncome: M(0, INR),
		TaxRates: TaxRates{
			STCG: 0.30,
			LTCG: 0.125,
			Cess: 0.04,
		},
		Slabs: []SurchargeSlab{
			{Threshold: M(5_000_000, INR), Rate: 0.10},  // > 50 Lakhs to 1 Cr
			{Threshold: M(10_000_000, INR), Rate: 0.15}, // > 1 Cr to 2 Cr
			{Threshold: M(20_000_000, INR), Rate: 0.25}, // > 2 Cr to 5 Cr
			{Threshold: M(50_000_000, INR), Rate: 0.37}, // > 5 Cr
		},
		RatesURL: DefaultRatesURL,
		Symbol:   "GOOG",
	}
}

// LoadConfig reads a JSON config file on top of the defaults. A missing file
// is not an error: you get the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("cannot read config %q: %w", path, err)
	}
	if err := json.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse config %q: %w", path, err)
	}
	return cfg, nil
}
