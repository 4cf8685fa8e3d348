// Package models lists the OpenAI models available to an API key,
// grouped into the chat models usable for script writing and the
// speech models usable for narration.
package models
