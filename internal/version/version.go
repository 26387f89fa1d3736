package version

import "github.com/fatih/color"

// Build metadata for the reify CLI. Override with -ldflags "-X reify/internal/version.Version=...".

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = "0.3.0"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Colored renders Version with each component tinted. Non-semantic versions are
// returned unchanged.
func Colored() string {
	major, minor, patch, suffix, ok := split(Version)
	if !ok {
		return Version
	}
	return versionMajorColor.Sprint(major) + "." +
		versionMinorColor.Sprint(minor) + "." +
		versionPatchColor.Sprint(patch) + suffix
}

func split(v string) (major, minor, patch, suffix string, ok bool) {
	parts := make([]string, 0, 3)
	start := 0
	for i := 0; i < len(v); i++ {
		switch c := v[i]; {
		case c == '.' && len(parts) < 2:
			parts = append(parts, v[start:i])
			start = i + 1
		case c == '-' || c == '+':
			if len(parts) == 2 {
				return parts[0], parts[1], v[start:i], v[i:], isDigits(parts[0]) && isDigits(parts[1]) && isDigits(v[start:i])
			}
		}
	}
	if len(parts) != 2 {
		return "", "", "", "", false
	}
	patch = v[start:]
	return parts[0], parts[1], patch, "", isDigits(parts[0]) && isDigits(parts[1]) && isDigits(patch)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
