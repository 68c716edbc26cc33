package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/brainscan/internal/config"
	"github.com/ludo-technologies/brainscan/internal/constants"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a brainscan configuration file",
		Long: `Generate a documented brainscan configuration file with sensible defaults.

By default, creates brainscan.yaml in the current directory with full
documentation. Use --interactive for a guided setup wizard.

Examples:
  # Create brainscan.yaml in current directory
  brainscan init

  # Team workspace with strict CI thresholds
  brainscan init --workspace team --strictness strict

  # Smaller config with essential options only
  brainscan init --minimal

  # Interactive setup wizard
  brainscan init -i`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", constants.ConfigFileName,
		"Output path for the config file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().Bool("minimal", false,
		"Generate minimal config with essential options only")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")
	cmd.Flags().String("workspace", string(config.WorkspaceTypePersonal),
		"Workspace type: personal, team, monorepo")
	cmd.Flags().String("strictness", string(config.StrictnessStandard),
		"Gate strictness: relaxed, standard, strict")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	interactive, _ := cmd.Flags().GetBool("interactive")
	workspaceFlag, _ := cmd.Flags().GetString("workspace")
	strictnessFlag, _ := cmd.Flags().GetString("strictness")

	workspaceType := config.WorkspaceType(workspaceFlag)
	if _, ok := config.GetWorkspacePresets()[workspaceType]; !ok {
		return fmt.Errorf("unknown workspace type %q", workspaceFlag)
	}
	strictness := config.Strictness(strictnessFlag)
	if _, ok := config.GetStrictnessPresets()[strictness]; !ok {
		return fmt.Errorf("unknown strictness %q", strictnessFlag)
	}

	if interactive {
		var err error
		workspaceType, strictness, configPath, err = runInteractiveSetup(configPath)
		if err != nil {
			return err
		}
	}

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	var content string
	if minimal {
		content = config.GetMinimalConfigTemplate()
	} else {
		content = config.GetFullConfigTemplate(workspaceType, strictness)
	}

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", displayPath)
	fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'brainscan scan' to audit your workspace.")

	return nil
}

func runInteractiveSetup(defaultConfigPath string) (config.WorkspaceType, config.Strictness, string, error) {
	fmt.Println()
	fmt.Println("brainscan Configuration Setup")
	fmt.Println("=============================")
	fmt.Println()

	workspaceTypes := []struct {
		Label string
		Value config.WorkspaceType
	}{
		{"Personal notes / single developer", config.WorkspaceTypePersonal},
		{"Shared team repository", config.WorkspaceTypeTeam},
		{"Monorepo", config.WorkspaceTypeMonorepo},
	}

	workspacePrompt := promptui.Select{
		Label: "What kind of workspace is this?",
		Items: workspaceTypes,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "\U0001F449 {{ .Label | cyan }}",
			Inactive: "   {{ .Label | white }}",
			Selected: "\U00002705 {{ .Label | green }}",
		},
	}

	workspaceIdx, _, err := workspacePrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("workspace selection cancelled: %w", err)
	}

	fmt.Println()

	strictnessLevels := []struct {
		Label       string
		Description string
		Value       config.Strictness
	}{
		{"Standard (recommended)", "Overall score of 50 required by brainscan check", config.StrictnessStandard},
		{"Relaxed", "Overall score of 30, fewer fixes listed", config.StrictnessRelaxed},
		{"Strict", "Per-dimension minimums for CI enforcement", config.StrictnessStrict},
	}

	strictnessPrompt := promptui.Select{
		Label: "How strict should the CI gate be?",
		Items: strictnessLevels,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "\U0001F449 {{ .Label | cyan }} - {{ .Description | faint }}",
			Inactive: "   {{ .Label | white }} - {{ .Description | faint }}",
			Selected: "\U00002705 {{ .Label | green }}",
		},
	}

	strictnessIdx, _, err := strictnessPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("strictness selection cancelled: %w", err)
	}

	fmt.Println()

	outputPrompt := promptui.Prompt{
		Label:   "Output file path",
		Default: defaultConfigPath,
	}

	outputPath, err := outputPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("output path input cancelled: %w", err)
	}
	if outputPath == "" {
		outputPath = defaultConfigPath
	}

	fmt.Println()
	return workspaceTypes[workspaceIdx].Value, strictnessLevels[strictnessIdx].Value, outputPath, nil
}
