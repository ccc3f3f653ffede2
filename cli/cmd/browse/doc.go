// Package browse implements an interactive fuzzy finder over the qualified
// keys of a configuration.
//
// Typing filters the key list. Up and Down (or Tab and Shift-Tab) move the
// highlight, and the value of the highlighted key is previewed below the
// list. Enter prints the chosen value and exits. Esc or Ctrl-C exits
// without printing.
//
// Chosen keys are remembered in a history file and listed first next time.
package browse
