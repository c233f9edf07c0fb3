package domain

// Storage buckets, one per media family.
const (
	BucketImages       = "images"
	BucketSermonsAudio = "sermons-audio"
	BucketSermonsVideo = "sermons-video"
)

// KnownBuckets lists every bucket uploads may target.
var KnownBuckets = []string{BucketImages, BucketSermonsAudio, BucketSermonsVideo}

// IsKnownBucket reports whether name is one of KnownBuckets.
func IsKnownBucket(name string) bool {
	for _, b := range KnownBuckets {
		if b == name {
			return true
		}
	}
	return false
}

// StoredObject describes a file accepted by the object store.
type StoredObject struct {
	URL          string `json:"url"`
	Path         string `json:"path"`
	Bucket       string `json:"bucket"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimetype"`
	OriginalName string `json:"originalName,omitempty"`
}
