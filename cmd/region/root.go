package region

import (
	"fmt"
	"time"

	"github.com/dgrid/dgrid/cmd/util"
	"github.com/dgrid/dgrid/lib/region"
	"github.com/dgrid/dgrid/rpc/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	regionAdmin client.IRegionAdmin

	// RegionCommands represents the region command group
	RegionCommands = &cobra.Command{
		Use:                "region",
		Short:              "Get and create regions of a remote cache",
		PersistentPreRunE:  setupRegionClient,
		PersistentPostRunE: teardownRegionClient,
	}
)

func init() {
	// Add common RPC flags to the region command
	util.SetupRPCClientFlags(RegionCommands)

	key := "stats"
	RegionCommands.PersistentFlags().Bool(key, false, util.WrapString("Print request latency statistics after the command"))

	// Flags describing the attributes of new regions
	for _, cmd := range []*cobra.Command{createRootCmd, createSubCmd} {
		setupAttributeFlags(cmd)
	}

	// Add subcommands
	RegionCommands.AddCommand(getCmd)
	RegionCommands.AddCommand(createRootCmd)
	RegionCommands.AddCommand(createSubCmd)
	RegionCommands.AddCommand(perfTestCmd)
}

// setupRegionClient initializes the region admin client
func setupRegionClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	t, err := util.GetTransport()
	if err != nil {
		return err
	}

	regionAdmin, err = client.NewRegionAdmin(*util.GetClientConfig(), t)
	return err
}

// teardownRegionClient prints the statistics if requested and closes the client
func teardownRegionClient(_ *cobra.Command, _ []string) error {
	if regionAdmin == nil {
		return nil
	}

	if viper.GetBool("stats") {
		timer := regionAdmin.Stats().Snapshot()
		fmt.Printf("\nrequests=%d mean=%s p99=%s max=%s\n",
			timer.Count(),
			time.Duration(timer.Mean()),
			time.Duration(timer.Percentile(0.99)),
			time.Duration(timer.Max()))
	}

	return regionAdmin.Close()
}

// setupAttributeFlags adds the flags describing the attributes of a new region
func setupAttributeFlags(cmd *cobra.Command) {
	key := "scope"
	cmd.Flags().String(key, region.ScopeDistributedNoAck.String(), util.WrapString("Scope of the region (local, distributed-no-ack, distributed-ack, global)"))

	key = "data-policy"
	cmd.Flags().String(key, region.DataPolicyNormal.String(), util.WrapString("Data policy of the region (normal, empty, preloaded, replicate, partition)"))

	key = "key-constraint"
	cmd.Flags().String(key, "", util.WrapString("Type name all keys must have (empty = any)"))

	key = "value-constraint"
	cmd.Flags().String(key, "", util.WrapString("Type name all values must have (empty = any)"))

	key = "initial-capacity"
	cmd.Flags().Int32(key, 16, util.WrapString("Initial capacity of the region"))

	key = "load-factor"
	cmd.Flags().Float32(key, 0.75, util.WrapString("Load factor of the region"))

	key = "concurrency-level"
	cmd.Flags().Int32(key, 16, util.WrapString("Expected number of concurrent writers"))

	key = "statistics"
	cmd.Flags().Bool(key, false, util.WrapString("Enable statistics for the region"))

	key = "entry-ttl"
	cmd.Flags().Duration(key, 0, util.WrapString("Time after which entries expire (0 = never)"))

	key = "entry-idle"
	cmd.Flags().Duration(key, 0, util.WrapString("Time after which unused entries expire (0 = never)"))
}

// attributesFromFlags builds the configuration of a new region from the bound flags
func attributesFromFlags() (*region.Config, error) {
	scope, ok := region.ParseScope(viper.GetString("scope"))
	if !ok {
		return nil, fmt.Errorf("invalid scope %q", viper.GetString("scope"))
	}
	policy, ok := region.ParseDataPolicy(viper.GetString("data-policy"))
	if !ok {
		return nil, fmt.Errorf("invalid data policy %q", viper.GetString("data-policy"))
	}

	return region.NewConfig().
		SetScope(scope).
		SetDataPolicy(policy).
		SetKeyConstraint(viper.GetString("key-constraint")).
		SetValueConstraint(viper.GetString("value-constraint")).
		SetInitialCapacity(viper.GetInt32("initial-capacity")).
		SetLoadFactor(float32(viper.GetFloat64("load-factor"))).
		SetConcurrencyLevel(viper.GetInt32("concurrency-level")).
		SetStatisticsEnabled(viper.GetBool("statistics")).
		SetEntryTimeToLive(viper.GetDuration("entry-ttl")).
		SetEntryIdleTimeout(viper.GetDuration("entry-idle")), nil
}
