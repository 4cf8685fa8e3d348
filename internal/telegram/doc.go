// Package telegram is a small Bot API client for publishing podcast
// episodes to a channel. It talks to the HTTP API directly and hands the
// decoded JSON envelope back to the caller, including ok=false replies.
package telegram
