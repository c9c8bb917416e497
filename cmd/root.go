package cmd

import (
	"fmt"
	"os"

	"github.com/dgrid/dgrid/cmd/region"
	"github.com/dgrid/dgrid/cmd/serve"
	"github.com/dgrid/dgrid/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "dgrid",
		Short: "distributed data grid",
		Long: fmt.Sprintf(`dGrid (v%s)

Host data grid caches and administrate their regions remotely.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dGrid",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dGrid v%s\n", Version)
		},
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(region.RegionCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "transport"
	RootCmd.PersistentFlags().String(key, "http", util.WrapString("transport to use (http, tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
