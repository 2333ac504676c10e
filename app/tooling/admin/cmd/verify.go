package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCID string

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Attest a video's storage and transcoding state",
	Run: func(cmd *cobra.Command, args []string) {
		post(fmt.Sprintf("/v1/video/verify/%s", verifyCID), nil)
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVarP(&verifyCID, "cid", "c", "", "Content identifier of the video.")
	verifyCmd.MarkFlagRequired("cid")
}
