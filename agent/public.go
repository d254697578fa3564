package agent

import (
	"context"
	"fmt"
	"os"

	"github.com/etnz/rsutax"
	"github.com/etnz/rsutax/date"
	"github.com/etnz/rsutax/docs"
	"github.com/etnz/rsutax/renderer"
	"github.com/etnz/rsutax/sbi"
	"github.com/etnz/rsutax/stockplan"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user holds foreign-listed stock compensation taxed in India. He is here to understand
			his capital gains, how much tax he owes and when, or what he could still do before year end.

			Devise a plan of questions to ask to each experts and come up with the best reponse to the user's request.

			Always remind the user that the figures are an estimate, not a filing.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher is an expert grounded on search, for anything the local data
// cannot answer (rate changes, budget announcements, market news).
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert researcher on Indian taxation of foreign equity,
		aware of the current finance act, rates, surcharge thresholds and filing deadlines.
		Ask the Researcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in Indian income tax on capital gains, especially for employees
			holding RSUs of foreign-listed companies. You leverage Google Search to ground your
			assertions in a solid truth, and you know how to relate the latest news to the user's request.
				`}}},
		},
	}
}

// NewTaxAccountant is the expert that can actually read the user's broker
// reports and compute figures from them.
func NewTaxAccountant() *Expert {

	lib := []Function{TaxReport}

	return &Expert{
		Name: "TaxAccountant",
		Description: `This is the Tax Accountant. He can read the user's broker reports and compute
		the capital gains report: FIFO disposals, the tax liability, the advance-tax
		schedule and the loss harvesting opportunities.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of the user's stock-plan tax figures.
				You know how to use the Tools to compute the full capital gains report from
				the user's broker exports. They might ask you questions about gains,
				installments or losses, pardon their approximative language and figure out
				what they meant, then read the answer off the report.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// The following implementation is not scalable, it will do for the MVP not further.

var TaxReport = &Func{

	Decl: &genai.FunctionDeclaration{
		Name: "TaxReport",
		Description: `TaxReport computes the full capital gains report from the broker CSV
		exports in the current directory: the FIFO disposal ledger, the set-off worksheet,
		the tax liability, the quarterly advance-tax schedule and the loss harvesting
		candidates.

		` + must(docs.GetTopic("setoff")),
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "The full report as a markdown document.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {

		report, err := localReport()
		if err != nil {
			return &genai.FunctionResponse{
				ID:   id,
				Name: "TaxReport",
				Response: map[string]any{
					"error": err.Error(),
				},
			}
		}
		return &genai.FunctionResponse{
			ID:   id,
			Name: "TaxReport",
			Response: map[string]any{
				"output": report,
			},
		}
	},
}

// localReport builds the report from the conventional file names in the
// current directory, the same ones the report command defaults to.
func localReport() (string, error) {
	cfg, err := rsutax.LoadConfig("config.json")
	if err != nil {
		return "", err
	}

	sf, err := os.Open("capital_gains.csv")
	if err != nil {
		return "", fmt.Errorf("could not open the capital gains report: %w", err)
	}
	defer sf.Close()
	sales, err := stockplan.ImportSales(sf)
	if err != nil {
		return "", err
	}

	rf, err := os.Open("releases.csv")
	if err != nil {
		return "", fmt.Errorf("could not open the releases report: %w", err)
	}
	defer rf.Close()
	lots, err := stockplan.ImportReleases(rf)
	if err != nil {
		return "", err
	}

	latest := rsutax.M(0, rsutax.USD)
	if qf, err := os.Open("quote_history.csv"); err == nil {
		defer qf.Close()
		if quotes, err := stockplan.ImportQuotes(qf, cfg.Symbol); err == nil && quotes.Len() > 0 {
			_, price := quotes.Latest()
			latest = rsutax.M(price, rsutax.USD)
		}
	}

	rates, err := sbi.Fetch(cfg.RatesURL)
	if err != nil {
		return "", err
	}

	today := date.Today()
	rep, err := rsutax.BuildReport(rsutax.Inputs{
		Sales:          sales,
		Lots:           lots,
		Rates:          rates,
		LatestPriceUSD: latest,
		Today:          today,
		Config:         cfg,
	})
	if err != nil {
		return "", err
	}
	return renderer.ReportMarkdown(rep, today), nil
}
