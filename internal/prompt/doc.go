// Package prompt implements the interactive terminal questions used by
// the CLI: free-form lines, secrets, confirmations, and the numbered
// album selection menu.
//
// All prompts translate Ctrl-C and Ctrl-D into ErrCancelled so callers
// can abort the whole run cleanly without treating it as a failure.
package prompt
