package gen

import (
	"github.com/spf13/cobra"
)

// GenCmd groups the artifact generation commands
var GenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate C headers, register listings and descriptions of the SoC",
}
