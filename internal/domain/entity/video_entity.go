package entity

import (
	"time"
)

// Default display dimensions applied when the client omits them,
// matching a portrait 1080x1920 player.
const (
	DefaultVideoWidth  = 1080
	DefaultVideoHeight = 1920
)

// Transformation carries the display parameters for a video asset.
type Transformation struct {
	Height  int  `json:"height"`
	Width   int  `json:"width"`
	Quality *int `json:"quality,omitempty"` // 1-100 when set
}

// Video is one uploaded asset's metadata record. VideoURL is unique across
// the store; records are immutable after creation.
type Video struct {
	ID             string
	Title          string
	Description    string
	VideoURL       string
	ThumbnailURL   string
	Controls       bool
	Transformation Transformation
	UserID         string
	CreatedAt      time.Time
}
