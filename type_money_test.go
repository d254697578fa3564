package rsutax

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyFX(t *testing.T) {
	// 100 USD at 83.50 INR/USD
	got := M(100, USD).FX(decimal.NewFromFloat(83.50), INR)
	if want := M(8350, INR); !got.Equal(want) {
		t.Errorf("FX = %s, want %s", got, want)
	}
	if got.Currency() != INR {
		t.Errorf("currency = %s, want INR", got.Currency())
	}
}

func TestMoneyWeakCurrency(t *testing.T) {
	// the "" currency binds to whatever it meets
	weak := M(10, "")
	got := weak.Add(M(5, INR))
	if got.Currency() != INR {
		t.Errorf("currency = %q, want INR", got.Currency())
	}

	defer func() {
		if recover() == nil {
			t.Error("no panic on USD + INR")
		}
	}()
	M(1, USD).Add(M(1, INR))
}

func TestMoneySignedString(t *testing.T) {
	if got := M(0, INR).SignedString(); got != "-" {
		t.Errorf("zero = %q, want -", got)
	}
	if got := M(10, INR).SignedString(); got[0] != '+' {
		t.Errorf("positive = %q, want a leading +", got)
	}
}

func TestMoneyUnmarshal(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`{"currency":"INR","amount":364000}`), &m); err != nil {
		t.Fatal(err)
	}
	if !m.Equal(M(364000, INR)) {
		t.Errorf("object form = %s, want INR 364000", m)
	}

	if err := json.Unmarshal([]byte(`123.45`), &m); err != nil {
		t.Fatal(err)
	}
	if m.Currency() != "" || !m.Sub(M(123.45, "")).IsZero() {
		t.Errorf("bare number form = %s %q, want weak 123.45", m, m.Currency())
	}
}
