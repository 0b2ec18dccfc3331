// Package openai implements the ai interfaces over OpenAI-compatible APIs.
//
// Embeddings and keyword extraction are configured independently, so the
// production setup can point embeddings at OpenAI and keyword extraction at
// Groq while sharing one ai.Config. Both clients speak the OpenAI wire
// protocol via langchaingo, so any compatible service (Ollama, vLLM, ...)
// works by changing the host.
//
// Keyword extraction results are cached per question with a TTL; the chat
// call runs at temperature 0 so cached answers stay representative.
package openai
