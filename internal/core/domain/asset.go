package domain

type CourseID string

// AssetKind distinguishes streamable lesson videos from downloadable
// course resources. The two kinds resolve owners and content types
// independently.
type AssetKind string

const (
	KindVideo    AssetKind = "video"
	KindResource AssetKind = "resource"
)

// MediaAsset is a catalog entry mapping a public filename to the course
// that owns it. Entries are authored by the course-content service;
// this service only reads them.
type MediaAsset struct {
	OwnerCourseID CourseID  `json:"owner_course_id"`
	StorageKey    string    `json:"storage_key"`
	Kind          AssetKind `json:"kind"`
}
