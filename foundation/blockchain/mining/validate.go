// Package mining implements the Proof of Transcoding/Storage pipeline:
// validate a video's storage and transcoding state, construct the
// storage proof, compute the reward and assemble the block.
package mining

import (
	"context"
	"fmt"
	"time"

	"github.com/shabareesh1383/sociora/foundation/blockchain/signature"
	"github.com/shabareesh1383/sociora/foundation/blockchain/storagenet"
)

// ValidationResult is the outcome of checking a video's storage and
// transcoding state at one point in time. Created once per attempt and
// never mutated; the values feed both the reward formula and the proof.
type ValidationResult struct {
	VideoCID           string   `json:"video_cid"`
	IsValid            bool     `json:"is_valid"`
	ValidatorAddress   string   `json:"validator_address"`
	Timestamp          string   `json:"timestamp"`
	StorageChecked     bool     `json:"storage_checked"`
	TranscodingChecked bool     `json:"transcoding_checked"`
	ReplicasFound      int      `json:"replicas_found"`
	TranscodingFormats []string `json:"transcoding_formats"`
	ValidationTime     float64  `json:"validation_time"`
	ErrorMessage       string   `json:"error_message,omitempty"`
}

// ValidateVideoStorage performs the read-only validation step against the
// registry. The checks run in a fixed order and short-circuit on the
// first failure: the video must exist, must be held by at least the
// minimum number of currently online nodes, and must have at least one
// transcoded rendition. Liveness is recounted on every call; a prior
// VERIFIED status is never trusted.
func ValidateVideoStorage(ctx context.Context, videoCID string, validatorAddress string, registry *storagenet.Registry, minReplicas int) ValidationResult {
	t := time.Now()

	result := ValidationResult{
		VideoCID:         videoCID,
		ValidatorAddress: validatorAddress,
		Timestamp:        signature.Now(),
	}

	done := func(r ValidationResult) ValidationResult {
		r.ValidationTime = time.Since(t).Seconds()
		return r
	}

	if err := ctx.Err(); err != nil {
		result.ErrorMessage = fmt.Sprintf("validation cancelled: %v", err)
		return done(result)
	}

	// One snapshot read: the existence check, the metadata and the live
	// replica count must describe the same moment of the registry.
	video, replicas, exists := registry.VideoReplicas(videoCID)
	if !exists {
		result.ErrorMessage = fmt.Sprintf("video %s not found on the storage network", videoCID)
		return done(result)
	}

	result.StorageChecked = true
	result.ReplicasFound = replicas

	if result.ReplicasFound < minReplicas {
		result.ErrorMessage = fmt.Sprintf("insufficient online replicas: found %d, need %d", result.ReplicasFound, minReplicas)
		return done(result)
	}

	result.TranscodingChecked = true

	if len(video.Profiles) == 0 {
		result.ErrorMessage = fmt.Sprintf("video %s has no transcoded profiles", videoCID)
		return done(result)
	}

	formats := make([]string, len(video.Profiles))
	for i, profile := range video.Profiles {
		formats[i] = profile.FormatName
	}
	result.TranscodingFormats = formats

	result.IsValid = true

	return done(result)
}
