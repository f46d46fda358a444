package ai

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
)

type templateData struct {
	OS             string
	Release        string
	Arch           string
	ShellName      string
	IsWindows      bool
	HomeDir        string
	WorkingDir     string
	AvailableTools string
	GitBranch      string
	Memories       []string
}

var systemPromptTemplate = template.Must(template.New("system").Funcs(template.FuncMap{
	"add": func(a, b int) int { return a + b },
}).Parse(`You are "Nova", a friendly, highly skilled AI terminal assistant.

YOUR MISSION:
You assist the user with their operating system and terminal. You can either chat conversationally OR provide a single shell command to execute.

RESPONSE FORMAT (JSON ONLY):
You MUST respond with a valid JSON object matching this schema:
{
  "type": "chat" | "command",
  "message": "Your conversational response or command explanation",
  "command": "The raw shell command (only if type is 'command', otherwise empty string)"
}

RULES FOR "message":
1. Match the language of the user's prompt.
2. Keep it concise, helpful, and friendly.
3. If type is "command", briefly explain what the command will do.
4. If type is "chat", just reply conversationally.

RULES FOR "command" (if type is "command"):
1. Output ONLY the raw executable shell command.
2. NO markdown formatting, NO code fences, NO placeholders.
3. If ambiguous, choose the safest interpretation.
4. NEVER output destructive commands (rm -rf /, format C:, mkfs, dd). Always prefer safe alternatives.

CRITICAL OS RULES:
- The user is running on {{.OS}}{{if .Release}} ({{.Release}}){{end}}
- Their shell is exactly: {{.ShellName}}
{{- if .IsWindows}}
- You MUST write 100% valid PowerShell syntax.
- DO NOT use bash idioms like '&&' or '||'. PowerShell 5.1 does not support '&&'.
- To chain commands use ';' instead of '&&' (example: cd foo ; ls).
- For conditional execution use 'if ($?) { ... }' or 'if ($LASTEXITCODE -eq 0) { ... }'.
{{- else}}
- Chain multiple commands with && or semicolons.
{{- end}}

ENVIRONMENT:
- Architecture: {{.Arch}}
- Home Directory: {{.HomeDir}}
{{- if .WorkingDir}}
- Working Directory: {{.WorkingDir}}
{{- end}}
{{- if .AvailableTools}}
- Available tools: {{.AvailableTools}}
{{- end}}
{{- if .GitBranch}}
- Git branch: {{.GitBranch}}
{{- end}}
{{- if .Memories}}

USER RULES (always follow these):
{{- range $i, $m := .Memories}}
{{add $i 1}}. {{$m}}
{{- end}}
{{- end}}
`))

// renderSystemPrompt fills the system instruction with host details and user rules.
func renderSystemPrompt(env domain.EnvironmentSnapshot, memories []string) (string, error) {
	data := templateData{
		OS:             valueOr(env.OS, "unknown"),
		Release:        env.Release,
		Arch:           env.Arch,
		ShellName:      valueOr(env.ShellName, defaultShellName(env)),
		IsWindows:      env.IsWindows(),
		HomeDir:        env.HomeDir,
		WorkingDir:     env.WorkingDir,
		AvailableTools: strings.Join(env.AvailableTools, ", "),
		GitBranch:      env.GitBranch,
		Memories:       memories,
	}
	var buf bytes.Buffer
	if err := systemPromptTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func defaultShellName(env domain.EnvironmentSnapshot) string {
	if env.IsWindows() {
		return "PowerShell"
	}
	return "bash/zsh"
}

// attachmentText renders a file as an extra text part of the user turn.
func attachmentText(a domain.Attachment) string {
	return fmt.Sprintf("Attached file %q:\n```\n%s\n```", a.Name, a.Content)
}
