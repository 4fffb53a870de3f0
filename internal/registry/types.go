package registry

// SearchResponse is the payload of the package search endpoint.
type SearchResponse struct {
	Packages []SearchResult `json:"packages"`
}

// SearchResult is one chart in a search response.
type SearchResult struct {
	PackageID      string     `json:"package_id"`
	Name           string     `json:"name"`
	NormalizedName string     `json:"normalized_name"`
	DisplayName    string     `json:"display_name"`
	Description    string     `json:"description"`
	Version        string     `json:"version"`
	AppVersion     string     `json:"app_version"`
	Deprecated     bool       `json:"deprecated"`
	Official       bool       `json:"official"`
	Stars          int        `json:"stars"`
	CreatedAt      int64      `json:"created_at"`
	Repository     Repository `json:"repository"`
}

// Package is the detail payload for a single chart version.
type Package struct {
	PackageID         string             `json:"package_id"`
	Name              string             `json:"name"`
	NormalizedName    string             `json:"normalized_name"`
	DisplayName       string             `json:"display_name"`
	Description       string             `json:"description"`
	Keywords          []string           `json:"keywords"`
	HomeURL           string             `json:"home_url"`
	Readme            string             `json:"readme"`
	Links             []Link             `json:"links"`
	Version           string             `json:"version"`
	AppVersion        string             `json:"app_version"`
	AvailableVersions []AvailableVersion `json:"available_versions"`
	Deprecated        bool               `json:"deprecated"`
	Official          bool               `json:"official"`
	Stars             int                `json:"stars"`
	CreatedAt         int64              `json:"created_at"`
	ContentURL        string             `json:"content_url"`
	Maintainers       []Maintainer       `json:"maintainers"`
	Repository        Repository         `json:"repository"`

	// Enrichment read loosely from the raw payload (see enrich.go); absent
	// on registries that do not provide it.
	Security       *SecuritySummary `json:"-"`
	OrgDisplayName string           `json:"-"`
}

// AvailableVersion is one entry of a package's version history.
type AvailableVersion struct {
	Version   string `json:"version"`
	CreatedAt int64  `json:"created_at"`
}

// Maintainer identifies a chart maintainer.
type Maintainer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Link is a labeled URL attached to a chart (source, docs, ...).
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Repository describes the repo a chart belongs to.
type Repository struct {
	Name              string `json:"name"`
	DisplayName       string `json:"display_name"`
	URL               string `json:"url"`
	Official          bool   `json:"official"`
	VerifiedPublisher bool   `json:"verified_publisher"`
}

// SecuritySummary counts scan findings by severity.
type SecuritySummary struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}
