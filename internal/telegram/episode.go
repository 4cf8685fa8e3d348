package telegram

import (
	"context"
	"html"
	"strings"
)

// Caption lines shared by every episode
const (
	captionTagline = "📰 Your daily newsletter transformed into an audio experience!"
	captionCadence = "🔔 Don't forget to check our next newsletter - we publish Monday, Wednesday, and Friday at 7AM."
	captionTags    = "#Podcast #Newsletter #DailyUpdate"
)

// PodcastCaption builds the HTML caption of an episode. postURL is optional.
func PodcastCaption(title, postURL string) string {
	sections := []string{
		"🎧 <b>" + html.EscapeString(title) + "</b>",
		captionTagline,
		captionCadence,
	}
	if postURL = strings.TrimSpace(postURL); postURL != "" {
		sections = append(sections, "📖 <b>Read the full newsletter:</b>\n"+html.EscapeString(postURL))
	}
	sections = append(sections, captionTags)
	return strings.Join(sections, "\n\n")
}

// SendPodcastEpisode uploads an episode with the standard caption
func (b *Bot) SendPodcastEpisode(ctx context.Context, chatID, audioPath, title, postURL string) (*Response, error) {
	return b.SendAudio(ctx, chatID, audioPath, PodcastCaption(title, postURL), title)
}
