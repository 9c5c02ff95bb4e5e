package insight

// Prompt text for the commentary and highlights calls. Kept as constants so
// they can be reviewed and tuned without touching call sites.

const commentarySystemPrompt = `You are a professional financial analyst. You write objective, concise assessments of a company's financial position based on the figures provided.`

const commentaryInstruction = `Based on the financial indicators below, write an objective, concise commentary (about 3-4 paragraphs) on the company's financial position. Focus on growth rates, the change in asset composition, and current liquidity.

Raw data and indicators:
`

const highlightsSystemPrompt = `You are a financial analysis assistant. You respond with a single JSON object and nothing else: no prose, no markdown fences.`

const highlightsInstruction = `Summarize the financial analysis below as JSON with this exact shape:
{
  "assessment": "<one-sentence overall assessment>",
  "key_drivers": ["<short phrase>", ...],
  "risks": ["<short phrase>", ...]
}

Analysis:
`
