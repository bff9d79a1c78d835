// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli implements the supportchat command line.

The root command opens the full-screen chat when stdin and stdout are
terminals and falls back to the line-based REPL otherwise. Subcommands cover
one-shot exchanges, retraining, the local mock backend and config management.

# Commands

	supportchat                      TUI, or REPL when not a terminal
	supportchat chat                 line-based REPL with history
	supportchat send TEXT            one exchange, result printed as JSON
	supportchat train                ask the backend to retrain
	supportchat mock-backend         serve canned NLU replies locally
	supportchat config show|path|get|set

# Key Types

  - REPL: Line-based chat loop over a LineReader
  - Renderer: widget.Renderer writing styled lines to an io.Writer
  - LineEditor: peterh/liner wrapper with a persistent history file
*/
package cli
