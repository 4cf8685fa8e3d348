package script

import "fmt"

// SystemPrompt is the persona given to the model
const SystemPrompt = "You are an experienced radio host and podcast producer who specializes in transforming written content into engaging, conversational audio scripts."

const promptTemplate = `Transform the following newsletter content into a conversational podcast transcript. Write it as if you're a radio host speaking directly to listeners.

FORMATTING REQUIREMENTS:
- Output ONLY the spoken text, with no stage directions, sound effects or formatting
- No "Host:", "[MUSIC]", "[TRANSITION]" or any other labels
- No brackets, colons or production notes
- The text is fed directly to a text-to-speech model, so it must be pure spoken content
- Write continuous flowing speech that a TTS model can read naturally

CONTENT GUIDELINES:
- Use a natural, conversational radio style
- Address the audience directly (use "you", "we", "let's")
- Select the most interesting items rather than mentioning every event
- Work in the weather information naturally if there is any
- Highlight special events and bigger announcements
- Include the main news stories
- Keep it warm and friendly, like a local radio show, with natural transitions
- Aim for a 3-5 minute read
- The newsletter is published on Monday, Wednesday and Friday at 7AM; based on the day, remind listeners to check the next one

NEWSLETTER CONTENT:
%s

Generate a clean podcast transcript with ONLY the spoken words:
`

// BuildPrompt embeds newsletter text into the instruction template
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}
