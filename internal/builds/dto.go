package builds

import "time"

// BuildResponse is the outward-facing representation of a build record.
type BuildResponse struct {
	ID          string    `json:"id"`
	BuildID     string    `json:"buildId"`
	Language    string    `json:"language"`
	Profiles    string    `json:"profiles"`
	Format      string    `json:"format"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	Checksum    string    `json:"checksum"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toResponse(build Build) BuildResponse {
	return BuildResponse{
		ID:          build.ID,
		BuildID:     build.BuildID,
		Language:    build.Language,
		Profiles:    build.Profiles,
		Format:      build.Format,
		FileName:    FileName(build),
		ContentType: build.ContentType,
		SizeBytes:   build.SizeBytes,
		Checksum:    build.Checksum,
		CreatedAt:   build.CreatedAt,
	}
}

func toResponses(items []Build) []BuildResponse {
	out := make([]BuildResponse, 0, len(items))
	for _, build := range items {
		out = append(out, toResponse(build))
	}
	return out
}
