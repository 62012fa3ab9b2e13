// Package prompt collects form fields interactively. The survey-backed
// driver talks to the terminal; tests substitute a scripted PromptDriver.
package prompt
