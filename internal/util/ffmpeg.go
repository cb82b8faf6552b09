package util

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// VideoInfo holds the probed metadata of an uploaded lesson video.
type VideoInfo struct {
	Duration float64 `json:"duration"` // seconds
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Format   string  `json:"format"`
	Size     int64   `json:"size"`
}

// GetVideoInfo probes a video file with ffprobe via ffmpeg-go.
func GetVideoInfo(videoPath string) (*VideoInfo, error) {
	fileInfo, err := os.Stat(videoPath)
	if err != nil {
		return nil, fmt.Errorf("video file not found: %v", err)
	}

	jsonOutput, err := ffmpeg.Probe(videoPath)
	if err != nil {
		return nil, fmt.Errorf("probe failed: %v", err)
	}

	var result struct {
		Streams []struct {
			CodecType string `json:"codec_type"`
			Width     int    `json:"width"`
			Height    int    `json:"height"`
		} `json:"streams"`
		Format struct {
			Duration string `json:"duration"`
			Format   string `json:"format_name"`
		} `json:"format"`
	}

	if err := json.Unmarshal([]byte(jsonOutput), &result); err != nil {
		return nil, fmt.Errorf("parse probe output: %v", err)
	}

	var width, height int
	for _, stream := range result.Streams {
		if stream.CodecType == "video" {
			width = stream.Width
			height = stream.Height
			break
		}
	}

	duration, _ := strconv.ParseFloat(result.Format.Duration, 64)

	return &VideoInfo{
		Duration: duration,
		Width:    width,
		Height:   height,
		Format:   result.Format.Format,
		Size:     fileInfo.Size(),
	}, nil
}
