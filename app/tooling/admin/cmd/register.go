package cmd

import (
	"github.com/spf13/cobra"
)

var (
	registerNodeID   string
	registerAddress  string
	registerRegion   string
	registerCapacity int64
	registerRep      float64
)

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a storage node with the network",
	Run: func(cmd *cobra.Command, args []string) {
		req := struct {
			NodeID          string  `json:"node_id"`
			Address         string  `json:"address"`
			Region          string  `json:"region"`
			StorageCapacity int64   `json:"storage_capacity"`
			Reputation      float64 `json:"reputation"`
		}{
			NodeID:          registerNodeID,
			Address:         registerAddress,
			Region:          registerRegion,
			StorageCapacity: registerCapacity,
			Reputation:      registerRep,
		}

		post("/v1/storage/node/register", req)
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVarP(&registerNodeID, "node", "n", "", "Unique id for the storage node.")
	registerCmd.Flags().StringVarP(&registerAddress, "address", "a", "", "Network address of the node.")
	registerCmd.Flags().StringVarP(&registerRegion, "region", "r", "", "Region the node runs in.")
	registerCmd.Flags().Int64VarP(&registerCapacity, "capacity", "c", 0, "Storage capacity in bytes.")
	registerCmd.Flags().Float64VarP(&registerRep, "reputation", "p", 80, "Starting reputation.")
	registerCmd.MarkFlagRequired("node")
	registerCmd.MarkFlagRequired("address")
	registerCmd.MarkFlagRequired("capacity")
}
