package cmd

import (
	"github.com/spf13/cobra"

	"sentryctl/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
}

func printConfigFile(cmd *cobra.Command, f config.File, path string) {
	cmd.Println("Configuration:")
	cmd.Printf("  accessToken: %s\n", config.MaskToken(f.AccessToken))
	host := f.Host
	if host == "" {
		host = config.DefaultHost
	}
	cmd.Printf("  host: %s\n", host)
	cmd.Printf("  defaultOrg: %s\n", orDash(f.DefaultOrg))
	cmd.Printf("  defaultProject: %s\n", orDash(f.DefaultProject))
	cmd.Println("")
	cmd.Printf("Config file: %s\n", path)
}

func orDash(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get configuration value(s)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		f, err := config.Read(path)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			printConfigFile(cmd, f, path)
			return nil
		}

		switch args[0] {
		case "accessToken", "token":
			cmd.Println(config.MaskToken(f.AccessToken))
		case "host":
			host := f.Host
			if host == "" {
				host = config.DefaultHost
			}
			cmd.Println(host)
		case "defaultOrg", "org":
			cmd.Println(orDash(f.DefaultOrg))
		case "defaultProject", "project":
			cmd.Println(orDash(f.DefaultProject))
		default:
			return &config.ConfigError{
				Message: "unknown config key: " + args[0] + " (valid keys: accessToken, host, defaultOrg, defaultProject)",
			}
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		path := configPath()
		f, err := config.Read(path)
		if err != nil {
			f = config.File{}
		}

		display := value
		switch key {
		case "accessToken", "token":
			f.AccessToken = value
			display = "***"
		case "host":
			f.Host = value
		case "defaultOrg", "org":
			f.DefaultOrg = value
		case "defaultProject", "project":
			f.DefaultProject = value
		default:
			return &config.ConfigError{
				Message: "unknown config key: " + key + " (valid keys: accessToken, host, defaultOrg, defaultProject)",
			}
		}

		if err := config.Write(path, f); err != nil {
			return err
		}
		cmd.Printf("Set %s = %s\n", key, display)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		f, err := config.Read(path)
		if err != nil {
			return err
		}
		printConfigFile(cmd, f, path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Println(configPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
