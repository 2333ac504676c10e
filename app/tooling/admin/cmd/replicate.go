package cmd

import (
	"github.com/spf13/cobra"
)

var (
	replicateCID  string
	replicateNode string
)

// replicateCmd represents the replicate command
var replicateCmd = &cobra.Command{
	Use:   "replicate",
	Short: "Record that a node holds a copy of a video",
	Run: func(cmd *cobra.Command, args []string) {
		req := struct {
			VideoCID string `json:"video_cid"`
			NodeID   string `json:"node_id"`
		}{
			VideoCID: replicateCID,
			NodeID:   replicateNode,
		}

		post("/v1/video/replicate", req)
	},
}

func init() {
	rootCmd.AddCommand(replicateCmd)
	replicateCmd.Flags().StringVarP(&replicateCID, "cid", "c", "", "Content identifier of the video.")
	replicateCmd.Flags().StringVarP(&replicateNode, "node", "n", "", "Storage node holding the copy.")
	replicateCmd.MarkFlagRequired("cid")
	replicateCmd.MarkFlagRequired("node")
}
