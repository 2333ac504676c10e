package cmd

import (
	"github.com/spf13/cobra"
)

var (
	transcodeCID     string
	transcodeFormats []string
)

// transcodeCmd represents the transcode command
var transcodeCmd = &cobra.Command{
	Use:   "transcode",
	Short: "Record transcoded renditions for a video",
	Run: func(cmd *cobra.Command, args []string) {
		type profile struct {
			FormatName string `json:"format_name"`
			Codec      string `json:"codec"`
			Resolution string `json:"resolution"`
		}

		profiles := make([]profile, len(transcodeFormats))
		for i, format := range transcodeFormats {
			profiles[i] = profile{
				FormatName: format,
				Codec:      "h264",
				Resolution: format,
			}
		}

		req := struct {
			VideoCID string    `json:"video_cid"`
			Profiles []profile `json:"profiles"`
		}{
			VideoCID: transcodeCID,
			Profiles: profiles,
		}

		post("/v1/video/transcode", req)
	},
}

func init() {
	rootCmd.AddCommand(transcodeCmd)
	transcodeCmd.Flags().StringVarP(&transcodeCID, "cid", "c", "", "Content identifier of the video.")
	transcodeCmd.Flags().StringSliceVarP(&transcodeFormats, "formats", "f", []string{"1080p", "720p", "480p"}, "Rendition formats.")
	transcodeCmd.MarkFlagRequired("cid")
}
