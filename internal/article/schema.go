package article

// StructuredData is the schema.org Article record embedded in the page.
type StructuredData struct {
	Context          string       `json:"@context"`
	Type             string       `json:"@type"`
	Headline         string       `json:"headline"`
	Description      string       `json:"description"`
	Author           Person       `json:"author"`
	DatePublished    string       `json:"datePublished"`
	Publisher        Organization `json:"publisher"`
	MainEntityOfPage WebPage      `json:"mainEntityOfPage"`
	Image            string       `json:"image"`
}

type Person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Organization struct {
	Type string      `json:"@type"`
	Name string      `json:"name"`
	Logo ImageObject `json:"logo"`
}

type ImageObject struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

type WebPage struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

// NewStructuredData builds the record from metadata alone.
func NewStructuredData(meta PageMetadata, site Site) StructuredData {
	return StructuredData{
		Context:       "https://schema.org",
		Type:          "Article",
		Headline:      meta.Title,
		Description:   meta.Description,
		Author:        Person{Type: "Person", Name: site.AuthorName, URL: site.URL("")},
		DatePublished: meta.Date,
		Publisher: Organization{
			Type: "Organization",
			Name: site.PublisherName,
			Logo: ImageObject{Type: "ImageObject", URL: site.URL(site.LogoPath)},
		},
		MainEntityOfPage: WebPage{Type: "WebPage", ID: meta.CanonicalURL},
		Image:            meta.Image,
	}
}
