package config

// Default prompt templates. Operators may override any of these via
// Settings; these are the values a freshly-loaded Settings carries.

const Stage1PromptDefault = `You are participating in a council of AI models asked to independently answer the same question. Answer as thoroughly and accurately as you can, in your own voice, without reference to any other model's response.

Question: {{.Query}}`

const Stage1SearchContextTemplate = `The following web search results may be relevant to the question. Use them if helpful, and cite sources where appropriate.

{{.SearchResults}}

`

const Stage2PromptDefault = `You will be shown a set of anonymized responses to the same question, labeled Response A, Response B, and so on. Rank them from best to worst based on accuracy, helpfulness, and clarity.

Question: {{.Query}}

{{.Responses}}

Respond with your reasoning, then end with a line starting "FINAL RANKING:" followed by a numbered list of the response labels from best to worst, e.g.:
FINAL RANKING:
1. Response B
2. Response A
3. Response C`

const Stage3PromptDefault = `You are the chairman of a council of AI models. Each model answered the following question independently, and then ranked each other's anonymized answers. Synthesize the best possible final answer, drawing on the strongest points of each response and informed by how the council ranked them.

Question: {{.Query}}

Council responses:
{{.Responses}}

Council rankings:
{{.Rankings}}

Write the single best final answer to the original question.`

const SearchQueryPromptDefault = `Given the following user question, produce a single, concise web search query that would surface the most relevant current information. Respond with only the query text.

Question: {{.Query}}`
