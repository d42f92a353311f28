package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/dimasadyaksa/vidstream/internal/domain/entity"
	repo "github.com/dimasadyaksa/vidstream/internal/domain/repository"
	"github.com/dimasadyaksa/vidstream/pkg/helpers"
)

var (
	ErrDuplicateVideo = errors.New("video already uploaded")
	ErrVideoNotFound  = errors.New("video not found")
)

// VideoEvent is the JSON message published to the event queue when a video
// record is created. The worker consumes it to maintain the search index.
type VideoEvent struct {
	Type        string `json:"type"`
	VideoID     string `json:"video_id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

const EventVideoCreated = "video.created"

// VideoService implements the identity-scoped video catalogue plus the media
// upload handshake with the storage bucket.
type VideoService struct {
	Repo          repo.VideoRepository
	Redis         *redis.Client
	Logger        *logrus.Logger
	Pub           *helpers.RabbitPublisher // video event queue; optional
	GCS           *storage.Client
	GCSBucket     string
	UploadURLTTL  time.Duration
	ES            *elasticsearch.Client
	ESVideosIndex string
}

func listCacheKey(userID string) string {
	return "videos:user:" + userID
}

// CreateVideoInput is the validated payload for a new video record.
type CreateVideoInput struct {
	Title          string
	Description    string
	VideoURL       string
	ThumbnailURL   string
	Controls       *bool // nil means the default (player controls on)
	Transformation entity.Transformation
}

// Create persists a new record owned by userID. Duplicate ingestion of the
// same uploaded asset is rejected by the unique video_url index.
func (s *VideoService) Create(ctx context.Context, userID string, in CreateVideoInput) (*entity.Video, error) {
	v := &entity.Video{
		Title:          in.Title,
		Description:    in.Description,
		VideoURL:       in.VideoURL,
		ThumbnailURL:   in.ThumbnailURL,
		Controls:       true,
		Transformation: in.Transformation,
		UserID:         userID,
	}
	if in.Controls != nil {
		v.Controls = *in.Controls
	}
	if v.Transformation.Width <= 0 {
		v.Transformation.Width = entity.DefaultVideoWidth
	}
	if v.Transformation.Height <= 0 {
		v.Transformation.Height = entity.DefaultVideoHeight
	}

	if err := s.Repo.Create(v); err != nil {
		if errors.Is(err, repo.ErrDuplicateVideo) {
			return nil, ErrDuplicateVideo
		}
		return nil, err
	}

	s.invalidateListCache(ctx, userID)
	s.publishCreated(ctx, v)
	return v, nil
}

// List returns the caller's own videos, newest first. Anonymous callers get an
// empty list: listing is always scoped to the caller's identity.
func (s *VideoService) List(ctx context.Context, userID string) ([]entity.Video, error) {
	if userID == "" {
		return []entity.Video{}, nil
	}

	if s.Redis != nil {
		var cached []entity.Video
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, listCacheKey(userID), &cached); err == nil && ok {
			return cached, nil
		}
	}

	videos, err := s.Repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, listCacheKey(userID), videos, 5*time.Minute); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("video list cache write failed")
		}
	}
	return videos, nil
}

// GetByID fetches a single record; it is not identity-scoped.
func (s *VideoService) GetByID(ctx context.Context, id string) (*entity.Video, error) {
	v, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrVideoNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *VideoService) invalidateListCache(ctx context.Context, userID string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, listCacheKey(userID)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("video list cache invalidation failed")
	}
}

func (s *VideoService) publishCreated(ctx context.Context, v *entity.Video) {
	if s.Pub == nil {
		return
	}
	ev := VideoEvent{
		Type:        EventVideoCreated,
		VideoID:     v.ID,
		UserID:      v.UserID,
		Title:       v.Title,
		Description: v.Description,
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if err := s.Pub.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("video_id", v.ID).Warn("video event publish failed")
	}
}

// SignedUpload is the pre-signed handshake payload: the client PUTs the binary
// to UploadURL and then POSTs the metadata with PublicURL as video_url.
type SignedUpload struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
	ObjectKey string `json:"object_key"`
}

// AuthorizeUpload issues a V4 signed PUT URL for a direct client upload.
func (s *VideoService) AuthorizeUpload(userID, filename, contentType string) (*SignedUpload, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("storage not configured")
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("videos", userID, id+ext))

	uploadURL, err := helpers.SignedUploadURL(s.GCS, s.GCSBucket, objectPath, contentType, s.UploadURLTTL)
	if err != nil {
		return nil, err
	}
	return &SignedUpload{
		UploadURL: uploadURL,
		PublicURL: helpers.PublicURL(s.GCSBucket, objectPath),
		ObjectKey: objectPath,
	}, nil
}

// UploadThumbnail streams a thumbnail image into the bucket and returns its
// public URL for use as thumbnail_url.
func (s *VideoService) UploadThumbnail(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("storage not configured")
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("thumbnails", userID, id+ext))
	return helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
}

// Search performs a caller-scoped multi_match over title and description in
// the videos index. Returns an empty result when the index is not available.
func (s *VideoService) Search(ctx context.Context, userID, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESVideosIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "description"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": userID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESVideosIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
