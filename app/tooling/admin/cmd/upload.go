package cmd

import (
	"github.com/spf13/cobra"
)

var (
	uploadCID      string
	uploadCreator  string
	uploadTitle    string
	uploadDuration int
	uploadSize     int64
)

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Register a new video on the storage network",
	Run: func(cmd *cobra.Command, args []string) {
		req := struct {
			VideoCID        string `json:"video_cid"`
			CreatorID       string `json:"creator_id"`
			Title           string `json:"title"`
			DurationSeconds int    `json:"duration_seconds"`
			SizeBytes       int64  `json:"size_bytes"`
		}{
			VideoCID:        uploadCID,
			CreatorID:       uploadCreator,
			Title:           uploadTitle,
			DurationSeconds: uploadDuration,
			SizeBytes:       uploadSize,
		}

		post("/v1/video/upload", req)
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().StringVarP(&uploadCID, "cid", "c", "", "Content identifier of the video.")
	uploadCmd.Flags().StringVarP(&uploadCreator, "creator", "r", "", "Hashed creator identity.")
	uploadCmd.Flags().StringVarP(&uploadTitle, "title", "t", "", "Title of the video.")
	uploadCmd.Flags().IntVarP(&uploadDuration, "duration", "d", 0, "Duration in seconds.")
	uploadCmd.Flags().Int64VarP(&uploadSize, "size", "s", 0, "Size in bytes.")
	uploadCmd.MarkFlagRequired("cid")
	uploadCmd.MarkFlagRequired("creator")
	uploadCmd.MarkFlagRequired("title")
}
