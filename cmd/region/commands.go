package region

import (
	"fmt"

	"github.com/dgrid/dgrid/cmd/util"
	"github.com/dgrid/dgrid/rpc/client"
	"github.com/spf13/cobra"
)

var (
	getCmd = &cobra.Command{
		Use:   "get [path]",
		Short: "Reads the region with the given full path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			info, ok, err := regionAdmin.GetRegion(util.GetCache(), path)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Printf("path=%s, found=false\n", path)
				return nil
			}
			printRegion(info)
			return nil
		},
	}
	createRootCmd = &cobra.Command{
		Use:   "create-root [name]",
		Short: "Creates a new root region",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs, err := attributesFromFlags()
			if err != nil {
				return err
			}
			info, err := regionAdmin.CreateRootRegion(util.GetCache(), args[0], attrs)
			if err != nil {
				return err
			}
			fmt.Println("created successfully")
			printRegion(info)
			return nil
		},
	}
	createSubCmd = &cobra.Command{
		Use:   "create-sub [parent path] [name]",
		Short: "Creates a new region below the region with the given path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs, err := attributesFromFlags()
			if err != nil {
				return err
			}
			info, err := regionAdmin.CreateSubregion(util.GetCache(), args[0], args[1], attrs)
			if err != nil {
				return err
			}
			fmt.Println("created successfully")
			printRegion(info)
			return nil
		},
	}
)

// printRegion prints a region in a human readable form
func printRegion(info client.RegionInfo) {
	fmt.Printf("path=%s, found=true\n", info.FullPath)
	if info.Attributes != nil {
		fmt.Printf("attributes=%s\n", info.Attributes)
	}
}
