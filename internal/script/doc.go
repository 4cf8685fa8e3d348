// Package script rewrites cleaned newsletter text into a spoken podcast
// script using a remote language model.
//
// Two providers are supported:
//   - openai: chat completions (default model gpt-4o)
//   - gemini: Gemini generateContent (default model gemini-2.0-flash)
//
// The model output is returned verbatim and fed straight into speech
// synthesis, so the prompt insists on spoken text only.
package script
