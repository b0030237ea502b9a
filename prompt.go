package asof

import "fmt"

// ComposePrompt builds the user prompt for a search-augmented completion.
// The prompt embeds the raw search content, the query, and the current year,
// and asks the model for a date-aware synthesis.
func ComposePrompt(a Analysis) string {
	return fmt.Sprintf(`Based on the following information from %[1]d:

%[2]s

Please provide a factual response about "%[3]s" that:
1. Is accurate to the current year (%[1]d)
2. Explicitly mentions relevant dates and timeframes
3. Synthesizes information from multiple sources
4. Provides context when discussing time-sensitive information

Format the response as a clear, direct statement.`, a.CurrentYear, a.RawContent, a.Query)
}
