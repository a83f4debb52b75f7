package llm

// pricing is USD per one million tokens.
type pricing struct {
	input  float64
	output float64
}

var chatPricing = map[string]pricing{
	"gpt-4o-mini":                {input: 0.15, output: 0.60},
	"gpt-4o":                     {input: 2.50, output: 10.00},
	"gpt-4.1-mini":               {input: 0.40, output: 1.60},
	"claude-haiku-4-5-20251001":  {input: 0.80, output: 4.00},
	"claude-sonnet-4-5-20250929": {input: 3.00, output: 15.00},
}

// EstimateCost returns the USD cost of a completion, or 0 for models with no
// known price (including local ones).
func EstimateCost(model string, inputTokens, outputTokens int) float64 {
	p, ok := chatPricing[model]
	if !ok {
		return 0
	}
	return float64(inputTokens)/1e6*p.input + float64(outputTokens)/1e6*p.output
}

// EstimateTokens approximates a token count at four characters per token.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	if n := len(text) / 4; n > 0 {
		return n
	}
	return 1
}

// EstimateMessageTokens sums EstimateTokens over a transcript.
func EstimateMessageTokens(msgs []Message) int {
	total := 0
	for _, m := range msgs {
		total += EstimateTokens(m.Content)
	}
	return total
}
