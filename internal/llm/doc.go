// Package llm provides the AI collaborator for emotion classification and
// pattern insights. It supports OpenAI and Anthropic providers behind a
// common client interface, with client-side rate limiting.
package llm
