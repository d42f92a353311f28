package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Title    string `json:"title" binding:"required,max=100"`
	VideoURL string `json:"videoUrl" binding:"required,url"`
	Email    string `json:"email" binding:"omitempty,email"`
	Quality  int    `json:"quality" binding:"omitempty,gte=1,lte=100"`
}

func TestToDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Init()

	tests := []struct {
		name    string
		payload samplePayload
		field   string
		message string
	}{
		{
			name:    "missing required field",
			payload: samplePayload{VideoURL: "https://cdn.example.com/a.mp4"},
			field:   "title",
			message: "is required",
		},
		{
			name:    "malformed url",
			payload: samplePayload{Title: "a", VideoURL: "not a url"},
			field:   "videoUrl",
			message: "must be a valid URL",
		},
		{
			name:    "bad email",
			payload: samplePayload{Title: "a", VideoURL: "https://x.com/a", Email: "nope"},
			field:   "email",
			message: "must be a valid email",
		},
		{
			name:    "quality above bound",
			payload: samplePayload{Title: "a", VideoURL: "https://x.com/a", Quality: 101},
			field:   "quality",
			message: "must be less than or equal to 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.payload)
			require.Error(t, err)
			details := ToDetails(err)
			assert.Equal(t, tt.message, details[tt.field])
		})
	}
}

func TestToDetails_InvalidJSON(t *testing.T) {
	var dst samplePayload
	err := json.Unmarshal([]byte("{broken"), &dst)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}

func TestToDetails_Fallback(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("boom")))
}
