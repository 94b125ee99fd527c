package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/etnz/fiplan"
	"github.com/etnz/fiplan/docs"
	"github.com/etnz/fiplan/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

func instructions(s string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: s}}}
}

// newFacilitator creates the expert in charge of the conversation.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instructions(`
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and keep context of your previous questions.

			The user is here to understand their household finances: past savings, how their
			assets are expected to grow, and when their investments could cover their spending.
			Devise a plan of questions to ask to each expert and come up with the best response.
			Always state the assumptions a projected figure depends on.
		`),
		},
		Library: NewLibrary(experts),
	}
}

// NewEconomist creates an expert grounded on Google Search, for market and economic context.
func NewEconomist() *Expert {
	return &Expert{
		Name: "Economist",
		Description: `This is an economist aware of markets, interest rates, inflation and pension systems.
		Ask the Economist whenever you need recent or grounding information to discuss assumptions.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instructions(`
			You are an economist. You search for the latest figures on markets, rates, inflation and
			pensions and relate them to the household plan you are asked about. You leverage
			Google Search to ground your assertions.
			`),
		},
	}
}

// NewPlanner creates the expert reading the user's statements and projection.
func NewPlanner(report *fiplan.Report, opts renderer.Options) *Expert {
	lib := PlannerFunctions(report, opts)
	return &Expert{
		Name: "Planner",
		Description: `This is the Planner. They know the household history statements, the monthly
		projection of incomes, expenses and assets, and the parameters used by the forecast.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instructions(`
			You are a financial planner in charge of the user's household plan.
			Use the Tools to read the history statements, the yearly projection, the forecast
			parameters, or query any figure of the report. Read the documentation topics to
			explain how figures are computed.
			`),
		},
		Library: NewLibrary(lib),
	}
}

// PlannerFunctions returns the tools of the planner over report.
func PlannerFunctions(report *fiplan.Report, opts renderer.Options) []Function {
	topics, _ := docs.All()
	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Statements",
				Description: "Statements returns the history cash flow, balance sheet and metrics as markdown tables.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"last": {Type: genai.TypeInteger, Description: "Only return the last n months, all when 0 or absent."},
					},
				},
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				last, err := intArg(args, "last", 0)
				if err != nil {
					return "", err
				}
				o := opts
				o.Last = last
				return renderer.StatementsMarkdown(report.Statements, o), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Projection",
				Description: "Projection returns the forecast summarized by calendar year, and its milestones.",
			},
			Func: func(context.Context, map[string]any) (string, error) {
				if report.Projection == nil {
					return "", fmt.Errorf("no projection available")
				}
				return renderer.ProjectionMarkdown(report.Projection, opts), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Parameters",
				Description: "Parameters returns the values derived by each forecaster from the history, like growth or decrease rates.",
			},
			Func: func(context.Context, map[string]any) (string, error) {
				if report.Projection == nil {
					return "", fmt.Errorf("no projection available")
				}
				return renderer.ParametersMarkdown(report.Projection.Parameters), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name: "Query",
				Description: `Query evaluates a JSONPath expression over the report and returns the JSON result.
				The report has "statements" (cashflow, balance_sheet, metrics), "history" and "projection.combined"
				tables whose "rows" have a "month", per item maps "incomes", "expenses", "accounts", "classes" and
				the statement columns like "net_savings", "total_financial_assets" or "fi_ratio_12m".`,
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"path": {Type: genai.TypeString, Description: `A JSONPath expression like "$.projection.combined.rows[-1:].total_financial_assets".`},
					},
					Required: []string{"path"},
				},
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				path, err := stringArg(args, "path")
				if err != nil {
					return "", err
				}
				v, err := report.Query(path)
				if err != nil {
					return "", err
				}
				data, err := json.Marshal(v)
				if err != nil {
					return "", err
				}
				return string(data), nil
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Topic",
				Description: "Topic returns the user documentation of fip on a topic.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"topic": {Type: genai.TypeString, Enum: topics, Description: "The documentation topic."},
					},
					Required: []string{"topic"},
				},
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				topic, err := stringArg(args, "topic")
				if err != nil {
					return "", err
				}
				return docs.Topic(topic)
			},
		},
	}
}
