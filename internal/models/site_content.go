package models

// SiteContent is the document served to the public site and replaced wholesale
// by the admin panel. Field names match the persisted JSON exactly. The stored
// document may carry fields this schema does not know about; readers that need
// to preserve them work on the raw JSON, not on this struct.
type SiteContent struct {
	Navbar     Navbar            `json:"navbar"`
	Hero       Hero              `json:"hero"`
	Projects   []Project         `json:"projects"`
	Services   []Service         `json:"services"`
	Skills     []Skill           `json:"skills"`
	Experience []Experience      `json:"experience"`
	Contact    Contact           `json:"contact"`
	Socials    map[string]string `json:"socials,omitempty"`
}

// Navbar holds the display identity and the ordered navigation links
type Navbar struct {
	Logo      string    `json:"logo"`
	Name      string    `json:"name"`
	ResumeURL string    `json:"resumeUrl,omitempty"`
	Items     []NavItem `json:"items"`
}

// NavItem is a single navigation link
type NavItem struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

// Hero holds the landing section fields and its color theme
type Hero struct {
	Badge           string     `json:"badge"`
	Title           string     `json:"title"`
	Subtitle        string     `json:"subtitle"`
	ProfileImage    string     `json:"profileImage,omitempty"`
	Intro           string     `json:"intro,omitempty"`
	PrimaryBtn      string     `json:"primaryBtn"`
	PrimaryBtnURL   string     `json:"primaryBtnUrl,omitempty"`
	SecondaryBtn    string     `json:"secondaryBtn"`
	SecondaryBtnURL string     `json:"secondaryBtnUrl,omitempty"`
	Colors          HeroColors `json:"colors"`
}

// HeroColors is the accent color and ordered gradient stop list
type HeroColors struct {
	Accent   string   `json:"accent"`
	Gradient []string `json:"gradient"`
}

// Project is one portfolio entry; ordering is positional, there is no id
type Project struct {
	Title           string `json:"title"`
	Category        string `json:"category"`
	Image           string `json:"image"`
	YoutubeEmbedURL string `json:"youtubeEmbedUrl"`
	Description     string `json:"description,omitempty"`
}

// Service is one offered service; Icon is a symbolic name resolved by the
// presentation layer, Price is a free-text label
type Service struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Icon        string `json:"icon"`
}

// Skill is one skill with a 0-100 proficiency level
type Skill struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Experience is one work history entry; Year is a free-text label
type Experience struct {
	Year        string `json:"year"`
	Role        string `json:"role"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

// Contact is the singleton contact section
type Contact struct {
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}
