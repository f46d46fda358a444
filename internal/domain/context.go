package domain

// EnvironmentSnapshot describes the host so the provider can tailor commands.
type EnvironmentSnapshot struct {
	OS             string
	Release        string
	Arch           string
	Shell          string
	ShellName      string
	HomeDir        string
	WorkingDir     string
	User           string
	AvailableTools []string
	GitBranch      string
}

// IsWindows reports whether commands are executed through PowerShell.
func (e EnvironmentSnapshot) IsWindows() bool {
	return e.OS == "windows"
}
