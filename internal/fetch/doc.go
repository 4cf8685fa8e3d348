// Package fetch retrieves the newest post of a Substack newsletter.
//
// Retrieval is an ordered chain of independent strategies, from the most
// official channel to the least: the archive API, the posts API with
// browser-like headers, the RSS feed, the RSS feed retried with rotating
// headers, and finally public RSS proxy services. The first strategy that
// yields non-empty markup and a post URL wins; every failure is logged and
// the chain moves on. When nothing works the Fetcher returns an
// *ExhaustedError naming the newsletter URL.
//
// All strategies share one HTTP client whose transport paces requests with
// a token bucket. The transport also keeps a per-host circuit breaker that
// trips after repeated refusals; its state is reset before every strategy,
// so each strategy starts independent of the failures of the ones before.
package fetch
