package cmd

import (
	"github.com/spf13/cobra"
)

var (
	mineCID     string
	mineCreator string
)

// mineCmd represents the mine command
var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine a block against a video",
	Run: func(cmd *cobra.Command, args []string) {
		req := struct {
			VideoCID  string `json:"video_cid"`
			CreatorID string `json:"creator_id"`
		}{
			VideoCID:  mineCID,
			CreatorID: mineCreator,
		}

		post("/v1/mining/mine", req)
	},
}

func init() {
	rootCmd.AddCommand(mineCmd)
	mineCmd.Flags().StringVarP(&mineCID, "cid", "c", "", "Content identifier of the video.")
	mineCmd.Flags().StringVarP(&mineCreator, "creator", "r", "", "Hashed creator identity.")
	mineCmd.MarkFlagRequired("cid")
	mineCmd.MarkFlagRequired("creator")
}
