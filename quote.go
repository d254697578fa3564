package rsutax

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Optional live quote for the granted security, used by loss harvesting when
// the broker's quote-history export is stale. TradeGate quotes everything in
// EUR, so the last trade is converted back to USD with a live EUR/USD.

func lsTCLatestEURperUSD() (float64, error) {
	addr := "https://www.ls-tc.de/_rpc/json/instrument/chart/dataForInstrument?instrumentId=349938&series=intraday&type=mini"
	var jobj any
	err := jwget(DailyClient(), addr, &jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error in wget %q: %w", "EUR/USD", err)
	}
	path := "$.series.intraday.data[-1:][1]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing %q: %q %w", "EUR/USD", path, err)
	}
	// because jsonpath is never clear about wheter it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	val, ok := jval.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("error parsing %q: %q %s %v", "EUR/USD", path, "not a float", jval)
	}
	return val, nil
}

// tradegateLatestEUR returns the last traded price, in EUR, for the security
// with the given isin.
func tradegateLatestEUR(name, isin string) (float64, error) {
	addr := "https://www.tradegate.de/refresh.php?isin=" + isin

	var jobj map[string]any
	err := jwget(DailyClient(), addr, &jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error retrieving %q: %w", name, err)
	}
	// last is the last transaction, moves slower than the bid, but the bid can be 0.
	jval := jobj["last"]
	if s, ok := jval.(string); ok {
		if s == "./." {
			// trade gate show's empty last this way, use the bid instead
			log.Println("'last' is empty, falling back to 'bid'")
			jval = jobj["bid"]
		}
	}
	val, ok := jval.(float64)
	if !ok {
		// sometimes, this weird API returns the value as a string
		sval, ok := jval.(string)
		if !ok {
			return math.NaN(), fmt.Errorf("cannot read value from %q: doesn't have a value and neither a float or string", name)
		}
		sval = strings.ReplaceAll(sval, ",", ".")
		sval = strings.ReplaceAll(sval, " ", "")
		val, err = strconv.ParseFloat(sval, 64)
		if err != nil {
			return math.NaN(), fmt.Errorf("cannot read value from %q: value is an invalid string %q: %w", name, sval, err)
		}
	}
	if val == 0 {
		// sometimes the bid is empty and returns 0
		return math.NaN(), fmt.Errorf("empty bid for %s no value to return: bidsize=%v", name, jobj["bidsize"])
	}
	return val, nil
}

// LiveQuoteUSD returns the latest traded price in USD for the security with
// the given isin, or an error when the market is unreachable. Callers should
// fall back to the broker's quote history.
func LiveQuoteUSD(name, isin string) (float64, error) {
	eur, err := tradegateLatestEUR(name, isin)
	if err != nil {
		return math.NaN(), err
	}
	eurPerUSD, err := lsTCLatestEURperUSD()
	if err != nil {
		return math.NaN(), err
	}
	if eurPerUSD == 0 {
		return math.NaN(), fmt.Errorf("empty EUR/USD rate")
	}
	return eur / eurPerUSD, nil
}
