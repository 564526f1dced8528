// Package util holds the informational convlog commands.
package util

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/ariel-frischer/convlog/internal/cli/shared"
	"github.com/ariel-frischer/convlog/internal/version"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/ariel-frischer/convlog"

const (
	boxTopLeft     = "╭"
	boxTopRight    = "╮"
	boxBottomLeft  = "╰"
	boxBottomRight = "╯"
	boxHorizontal  = "─"
	boxVertical    = "│"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for convlog",
	Example: `  # Show version info
  convlog version

  # Plain output (for scripts)
  convlog version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		if plain {
			printPlainVersion(cmd.OutOrStdout())
			return
		}
		printPrettyVersion(cmd.OutOrStdout())
	},
}

// Register adds the version and doctor commands to root.
func Register(root *cobra.Command) {
	versionCmd.GroupID = shared.GroupInfo
	doctorCmd.GroupID = shared.GroupInfo
	root.AddCommand(versionCmd, doctorCmd)
}

func init() {
	versionCmd.Flags().Bool("plain", false, "Plain output without formatting")
}

type versionField struct {
	label string
	value string
}

func versionFields() []versionField {
	return []versionField{
		{"Version", version.Version},
		{"Commit", truncateCommit(version.Commit)},
		{"Built", version.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)},
		{"Source", SourceURL},
	}
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(out io.Writer) {
	fmt.Fprintf(out, "convlog %s\n", version.Version)
	fmt.Fprintf(out, "commit: %s\n", version.Commit)
	fmt.Fprintf(out, "built: %s\n", version.BuildDate)
	fmt.Fprintf(out, "go: %s\n", runtime.Version())
	fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// printPrettyVersion prints the version fields inside a rounded box.
func printPrettyVersion(out io.Writer) {
	yellow := color.New(color.FgYellow).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()

	fields := versionFields()
	contentWidth := 0
	for _, f := range fields {
		contentWidth = max(contentWidth, 10+4+len(f.value))
	}
	boxWidth := contentWidth + 4

	fmt.Fprintln(out, boxTopLeft+strings.Repeat(boxHorizontal, boxWidth-2)+boxTopRight)
	for _, f := range fields {
		// Pad on raw text so color codes don't skew the width.
		fill := strings.Repeat(" ", contentWidth-(10+4+len(f.value)))
		fmt.Fprintf(out, "%s %s    %s%s %s\n",
			boxVertical, yellow(fmt.Sprintf("%10s", f.label)), white(f.value), fill, boxVertical)
	}
	fmt.Fprintln(out, boxBottomLeft+strings.Repeat(boxHorizontal, boxWidth-2)+boxBottomRight)
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
