// Package audio narrates podcast scripts into audio files.
//
// Providers implement text-to-speech against a remote or local engine:
// Replicate (minimax/speech-02-turbo, the default), OpenAI speech and the
// local espeak-ng binary. A Narrator drives one provider, optionally
// wrapped with a fallback, and reports the resulting Artifact.
package audio
