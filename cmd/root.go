package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Manu343726/csrgen/cmd/gen"
	"github.com/Manu343726/csrgen/cmd/tools"
	"github.com/Manu343726/csrgen/pkg/config"
	"github.com/Manu343726/csrgen/pkg/soc/xtrx"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "csrgen",
	Short: "CSR register map and C header generator for the XTRX SoC",
	Long: `csrgen models the control/status registers of the Fairwaves XTRX gateware
(LMS7002M control and SPI master, GPIO, PMIC, PCIe DMA, ...) and generates the
csr.h, soc.h and mem.h headers the host driver build consumes.

The SoC model is the built-in XTRX definition, tuned with the --sys-clk-freq,
--with-pcie, ... flags, or a YAML description given with --description.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(gen.GenCmd, tools.ToolsCmd)
	cobra.OnInitialize(initConfig)

	defaults := xtrx.DefaultOptions()
	flags := RootCmd.PersistentFlags()

	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.csrgen.yaml, then ./.csrgen.yaml)")
	flags.StringP("description", "d", "", "YAML SoC description. If omitted, the built-in XTRX SoC is used")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("log-file", "", "Also write JSON logs to this file")
	flags.Int64("sys-clk-freq", defaults.SysClkFreq, "System clock frequency in Hz")
	flags.Bool("with-pcie", defaults.WithPCIe, "Include the PCIe PHY, DMA, MSI, ICAP and flash peripherals")
	flags.Int("pcie-lanes", defaults.PCIeLanes, "PCIe lanes (1, 2 or 4)")
	flags.Bool("with-led-chaser", defaults.WithLedChaser, "Include the led chaser")
	flags.Bool("with-analyzer", defaults.WithAnalyzer, "Include the logic analyzer")

	config.SetDefaults(viper.GetViper())

	for key, flag := range map[string]string{
		config.KeyDescription:   "description",
		config.KeyLogLevel:      "log-level",
		config.KeyLogFile:       "log-file",
		config.KeySysClkFreq:    "sys-clk-freq",
		config.KeyWithPCIe:      "with-pcie",
		config.KeyPCIeLanes:     "pcie-lanes",
		config.KeyWithLedChaser: "with-led-chaser",
		config.KeyWithAnalyzer:  "with-analyzer",
	} {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(flag)))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory and then the working directory with name ".csrgen" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".csrgen")
	}

	viper.SetEnvPrefix("CSRGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || cfgFile != "" {
			fmt.Fprintln(os.Stderr, "Error reading config file:", err)
			os.Exit(1)
		}
	}
}
