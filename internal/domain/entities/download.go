package entities

// DownloadTask is one queued file download. Ephemeral, exists only between
// library resolution and the batch download call.
type DownloadTask struct {
	URL    string
	Folder string
	Path   string
	Name   string
	Size   int64

	// SHA1 is the declared artifact checksum; verified after download when set.
	SHA1 string
}

// MirrorHit is a successful mirror lookup for a repository-relative path.
type MirrorHit struct {
	URL  string
	Size int64
}
