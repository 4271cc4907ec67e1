package tools

import (
	"github.com/spf13/cobra"
)

// ToolsCmd groups the commands inspecting the SoC model
var ToolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "SoC register map inspection tools",
}
