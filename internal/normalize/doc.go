// Package normalize turns newsletter markup into paragraph-structured
// plain text suitable for a language model prompt.
package normalize
