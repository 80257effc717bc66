// Package tui runs the Time & Effort wizard in a terminal. A Runner renders
// each step's fields as survey prompts, previews the allocation while step 2
// is edited, and forwards navigation to a wizard.Session. Prompting goes
// through the PromptDriver interface so flows can be scripted in tests.
package tui
