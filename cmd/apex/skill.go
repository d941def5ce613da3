// ABOUTME: Install Claude Code skill for apex
// ABOUTME: Embeds and installs the skill definition to ~/.claude/skills/

package main

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

var skillSkipConfirm bool

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install Claude Code skill",
	Long: `Install the apex skill for Claude Code.

This copies the skill definition to ~/.claude/skills/apex/
so Claude Code can use apex commands contextually.`,
	Annotations: map[string]string{skipSetup: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		return installSkill(cmd.InOrStdin(), cmd.OutOrStdout(), home)
	},
}

func init() {
	installSkillCmd.Flags().BoolVarP(&skillSkipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(installSkillCmd)
}

func installSkill(in io.Reader, w io.Writer, home string) error {
	skillDir := filepath.Join(home, ".claude", "skills", "apex")
	skillPath := filepath.Join(skillDir, "SKILL.md")

	fmt.Fprintln(w, "┌─────────────────────────────────────────────────────────────┐")
	fmt.Fprintln(w, "│              Apex Skill for Claude Code                     │")
	fmt.Fprintln(w, "└─────────────────────────────────────────────────────────────┘")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "This will install the apex skill, enabling Claude Code to:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  • Check off habits and tasks")
	fmt.Fprintln(w, "  • Add routines and journal notes")
	fmt.Fprintln(w, "  • Report your level and weekly progress")
	fmt.Fprintln(w, "  • Use the /apex slash command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Destination:")
	fmt.Fprintf(w, "  %s\n", skillPath)
	fmt.Fprintln(w)

	if _, err := os.Stat(skillPath); err == nil {
		fmt.Fprintln(w, "Note: A skill file already exists and will be overwritten.")
		fmt.Fprintln(w)
	}

	if !skillSkipConfirm {
		fmt.Fprint(w, "Install the apex skill? [y/N] ")
		reader := bufio.NewReader(in)
		response, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read response: %w", err)
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(w, "Installation canceled.")
			return nil
		}
		fmt.Fprintln(w)
	}

	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}

	if err := os.MkdirAll(skillDir, 0750); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}

	if err := os.WriteFile(skillPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	success(w, "Installed apex skill successfully!")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Claude Code will now recognize /apex commands.")
	fmt.Fprintln(w, "Try asking Claude: \"Check off my run for today\" or \"How is my week going?\"")
	return nil
}
