// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the styled, interactive Bubble Tea views the
chat UI composes: header, status bar, message bubbles, code blocks, diff
viewer, permission prompts, tool result cards, error display, and the
welcome screen. Most components take a *styles.Theme in their constructor
(CodeBlock, DiffViewer, Spinner, ProgressIndicator, ErrorDisplay and
ToastManager use the package-level style colors instead):

	theme := styles.NewTheme()
	header := components.NewHeader(theme)
	header.SetWidth(80)
	header.SetModel("minimax-m2")
	view := header.View()

# Components

Header (header.go) - title, model name, and mode (plan/builder) badge.
StatusBar (statusbar.go) - mode, model, token-budget bar, and turn status.
MessageBubble / MessageList (message.go) - role-colored chat bubbles.
ChatViewport (viewport.go) - scrollable message list with indicators.
InputArea (input.go) - single-line text input with character counter
  (MultilineInputArea in the same file is the multi-line variant).
CodeBlock (codeblock.go) - syntax-highlighted fenced code via Chroma.
RenderMarkdown (markdown.go) - glamour-rendered markdown for finalized assistant content.
DiffViewer (diff_viewer.go) - unified diff rendering, used by MessageBubble
  for a ToolResult whose Preview.Kind is "diff".
PermissionPrompt (permission.go) - non-blocking notice shown while a tool call runs.
ToolResultView / ToolResultList (toolresult.go) - collapsible tool output.
Spinner (spinner.go) - animated "thinking" indicator.
ProgressIndicator (progress.go) - progress bars for long-running tool calls.
ErrorDisplay / ErrorToast (error.go, error_toast.go) - error surfacing.
Welcome (welcome.go) - first-run screen shown for a fresh session.

ChatViewport, InputArea, Welcome, ErrorDisplay and the spinner types follow
the Bubble Tea shape without being registered as a top-level tea.Model:
each has an Update that returns its own concrete type, plus a View. There
is no shared Component interface; the other components have View only.

	func (cv *ChatViewport) Update(msg tea.Msg) (*ChatViewport, tea.Cmd)
	func (cv *ChatViewport) View() string

Shared number and percent formatting helpers live in helpers.go.
*/
package components
