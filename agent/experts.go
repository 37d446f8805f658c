package agent

import (
	"context"

	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// HoldingsFunc returns the holdings as markdown, priced at the start of the session.
type HoldingsFunc func(ctx context.Context) (string, error)

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
			You are in charge of the conversation with an investor about their stock portfolio.

			The experts listed in your Tools are at your service and keep the context of your
			previous questions. Devise a plan of questions to ask them and come up with the best
			response to the user's request.

			The user assumes that you know their positions: always ask the Analyst first.
			Answer in markdown, keep it short.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewTrader returns an expert that knows the news about companies and markets.
func NewTrader() *Expert {
	return &Expert{
		Name: "Trader",
		Description: `This is an expert trader, aware of the latest news about companies and markets.
		Ask the Trader whenever you need recent or grounding information about a symbol.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in trading, you can search and find about anything related to
			listed companies and stock markets. You leverage Google Search to ground your
			assertions. Relate the latest news to the user's request.
			`}}},
		},
	}
}

// NewAnalyst returns an expert that reads the user's positions with 'holdings'.
func NewAnalyst(holdings HoldingsFunc) *Expert {
	lib := []Function{Holdings(holdings)}
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It reads the user's portfolio: positions, average buy
		prices, current prices, market values and unrealized gains or losses.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are the analyst of the user's stock portfolio. Use the Holdings tool to read
			the positions before answering, and compute the figures you are asked about from it.
			Buy prices are weighted averages of all purchases of a symbol.
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

// Holdings returns the function that lets a model read the holdings.
func Holdings(holdings HoldingsFunc) *Func {
	const name = "Holdings"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Holdings lists the positions of the portfolio: symbol, quantity, average buy
			price, current price, market value, gain or loss, and totals. Current prices are the ones
			refreshed at the start of the conversation, they do not change until the user asks again.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the positions.",
			},
		},
		Func: func(ctx context.Context, id string, _ map[string]any) *genai.FunctionResponse {
			out, err := holdings(ctx)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, out)
		},
	}
}
