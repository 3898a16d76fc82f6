package llm

// GeminiSchema exposes the schema conversion to the external tests.
var GeminiSchema = geminiSchema
