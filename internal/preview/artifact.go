package preview

import "webgen_ai_server/internal/types"

// DownloadFileName is the name the downloaded document is saved under.
const DownloadFileName = "generated-website.html"

// Artifact is the self-contained file offered for download.
type Artifact struct {
	FileName    string
	ContentType string
	Body        []byte
}

// NewArtifact serializes the assembled document for bundle.
func NewArtifact(bundle types.ProjectBundle) Artifact {
	return Artifact{
		FileName:    DownloadFileName,
		ContentType: "text/html; charset=utf-8",
		Body:        []byte(AssembleDocument(bundle)),
	}
}
