package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type colorMode string

const (
	colorModeAuto colorMode = "auto"
	colorModeOn   colorMode = "on"
	colorModeOff  colorMode = "off"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	okColor    = color.New(color.FgGreen)
	shapeColor = color.New(color.FgCyan)
	dimColor   = color.New(color.Faint)

	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("6"))

	useColor = true
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorModeAuto, nil
	case "on":
		return colorModeOn, nil
	case "off":
		return colorModeOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

func setupColor(cmd *cobra.Command) error {
	value, err := cmd.Flags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := readColorMode(value)
	if err != nil {
		return err
	}
	switch mode {
	case colorModeOn:
		useColor = true
	case colorModeOff:
		useColor = false
	default:
		useColor = isTerminal(os.Stdout) && os.Getenv("NO_COLOR") == ""
	}
	color.NoColor = !useColor
	return nil
}

// styled renders s with st when colors are enabled.
func styled(st lipgloss.Style, s string) string {
	if !useColor {
		return s
	}
	return st.Render(s)
}
