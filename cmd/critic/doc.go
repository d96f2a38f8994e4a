// Critic is a resilient CLI for analyzing source code with LLM backends.
//
// It walks an ordered provider chain (HuggingFace, Gemini, Groq, OpenAI) and
// commits to the first backend that responds, degrading to deterministic
// static analysis when none is reachable. Results carry a provenance tag so
// consumers always know which path produced them.
//
// Usage:
//
//	critic review <path>        # general code review
//	critic security <path>      # security-focused analysis
//	critic performance <path>   # performance-focused analysis
//	critic improve <path>       # rewrite code addressing findings
//	critic document <path>      # add documentation comments
//	critic providers resolve    # show which backend would be used
//
// The path may be a file, a directory, a .zip archive, or a git URL.
package main
