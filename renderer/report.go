// Package renderer turns computed reports into markdown. No computation
// happens here, only formatting.
package renderer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/rsutax"
	"github.com/etnz/rsutax/date"
	"github.com/shopspring/decimal"
)

// ReportMarkdown renders a full advisory run.
func ReportMarkdown(rep *rsutax.Report, today date.Date) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Capital Gains Tax Report as of %s\n\n", today)

	DisposalsMarkdown(&b, rep.Disposals)
	TaxMarkdown(&b, rep.Tax)
	ScheduleMarkdown(&b, rep.Schedule)
	LotsMarkdown(&b, rep.Lots)
	HarvestMarkdown(&b, rep.Harvest)
	RatesMarkdown(&b, rep.RatesUsed, rep.Fallbacks)
	ChecksMarkdown(&b, rep.Checks, rep.Unmatched)

	return b.String()
}

// DisposalsMarkdown writes the FIFO-matched disposal ledger.
func DisposalsMarkdown(b *strings.Builder, disposals []rsutax.Disposal) {
	fmt.Fprint(b, "## Disposals (FIFO)\n\n")
	if len(disposals) == 0 {
		fmt.Fprint(b, "No sales in the period.\n\n")
		return
	}

	fmt.Fprintln(b, "| Sold | Acquired | Shares | Held (days) | Class | Proceeds | Cost | Gain |")
	fmt.Fprintln(b, "|:---|:---|---:|---:|:---:|---:|---:|---:|")
	total := rsutax.M(0, rsutax.INR)
	for _, d := range disposals {
		fmt.Fprintf(b, "| %s | %s | %s | %d | %s | %s | %s | %s |\n",
			d.SaleDate, d.AcquisitionDate, d.Shares, d.HoldingDays, d.Class,
			d.ProceedsINR, d.CostINR, d.GainINR.SignedString(),
		)
		total = total.Add(d.GainINR)
	}
	fmt.Fprintf(b, "| **Total** | | | | | | | **%s** |\n\n", total.SignedString())
}

// TaxMarkdown writes the set-off worksheet and the resulting liability.
func TaxMarkdown(b *strings.Builder, c rsutax.TaxComputation) {
	fmt.Fprint(b, "## Tax Computation\n\n")

	fmt.Fprintln(b, "| | Gains | Losses | Net Taxable |")
	fmt.Fprintln(b, "|:---|---:|---:|---:|")
	fmt.Fprintf(b, "| Short term | %s | %s | %s |\n", c.STCG, c.STCL, c.NetTaxableSTCG)
	fmt.Fprintf(b, "| Long term | %s | %s | %s |\n\n", c.LTCG, c.LTCL, c.NetTaxableLTCG)

	fmt.Fprintln(b, "| Liability | Amount |")
	fmt.Fprintln(b, "|:---|---:|")
	fmt.Fprintf(b, "| Base tax | %s |\n", c.BaseTax)
	fmt.Fprintf(b, "| Surcharge (%s) | %s |\n", c.SurchargeRate, c.Surcharge)
	fmt.Fprintf(b, "| Cess | %s |\n", c.Cess)
	fmt.Fprintf(b, "| **Total** | **%s** |\n\n", c.TotalTax)
}

// ScheduleMarkdown writes the advance-tax installment plan.
func ScheduleMarkdown(b *strings.Builder, installments []rsutax.Installment) {
	fmt.Fprint(b, "## Advance Tax Schedule\n\n")
	if len(installments) == 0 {
		return
	}

	fmt.Fprintln(b, "| Due | Liability through | Amount |")
	fmt.Fprintln(b, "|:---|:---|---:|")
	for _, inst := range installments {
		fmt.Fprintf(b, "| %s | %s | %s |\n", inst.DueDate, inst.LiabilityCutoff, inst.Amount)
	}
	fmt.Fprintln(b)
}

// LotsMarkdown writes the lot balances after FIFO consumption.
func LotsMarkdown(b *strings.Builder, lots []rsutax.AcquisitionLot) {
	fmt.Fprint(b, "## Acquisition Lots\n\n")
	fmt.Fprintln(b, "| Vested | Unit cost | Acquired | Sold | Remaining |")
	fmt.Fprintln(b, "|:---|---:|---:|---:|---:|")
	for _, lot := range lots {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
			lot.Date, lot.UnitCostUSD, lot.Acquired, lot.Sold(), lot.Remaining)
	}
	fmt.Fprintln(b)
}

// HarvestMarkdown writes the loss-harvesting suggestions.
func HarvestMarkdown(b *strings.Builder, candidates []rsutax.HarvestCandidate) {
	fmt.Fprint(b, "## Loss Harvesting Opportunities\n\n")
	if len(candidates) == 0 {
		fmt.Fprint(b, "No positions with an unrealized loss.\n\n")
		return
	}

	fmt.Fprintln(b, "| Vested | Shares | Unit cost | Market price | Unrealized |")
	fmt.Fprintln(b, "|:---|---:|---:|---:|---:|")
	for _, c := range candidates {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
			c.AcquisitionDate, c.Remaining, c.AcqPriceUSD, c.MarketPriceUSD, c.UnrealizedINR.SignedString())
	}
	fmt.Fprintln(b)
}

// RatesMarkdown writes the exchange rates actually used, then the fallback
// warnings. The engine accumulates fallbacks per use; they are deduplicated
// here where repetition would only be noise.
func RatesMarkdown(b *strings.Builder, used map[date.Date]decimal.Decimal, fallbacks []rsutax.FallbackEvent) {
	fmt.Fprint(b, "## Exchange Rates Used (TTBR)\n\n")
	if len(used) > 0 {
		days := make([]date.Date, 0, len(used))
		for d := range used {
			days = append(days, d)
		}
		sortDays(days)

		fmt.Fprintln(b, "| Rate date | INR per USD |")
		fmt.Fprintln(b, "|:---|---:|")
		for _, d := range days {
			fmt.Fprintf(b, "| %s | %s |\n", d, used[d])
		}
		fmt.Fprintln(b)
	}

	seen := make(map[date.Date]bool)
	for _, ev := range fallbacks {
		if seen[ev.Required] {
			continue
		}
		seen[ev.Required] = true
		fmt.Fprintf(b, "> ⚠️ no rate for %s, used %s (%s)\n", ev.Required, ev.Used, ev.Reason)
	}
	if len(seen) > 0 {
		fmt.Fprintln(b)
	}
}

// ChecksMarkdown writes the validation summary.
func ChecksMarkdown(b *strings.Builder, checks rsutax.Checks, unmatched rsutax.Quantity) {
	fmt.Fprint(b, "## Validation\n\n")
	for _, c := range checks {
		mark := "✅"
		if !c.Passed {
			mark = "❌"
		}
		fmt.Fprintf(b, "- %s %s: %s\n", mark, c.Name, c.Detail)
	}
	fmt.Fprintln(b)
	if unmatched.GreaterThan(rsutax.Q(0)) {
		fmt.Fprintf(b, "> ⚠️ %s sold shares could not be matched to any vested lot. The report covers the matched portion only.\n\n", unmatched)
	}
}

func sortDays(days []date.Date) {
	slices.SortFunc(days, func(a, b date.Date) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		default:
			return 0
		}
	})
}
