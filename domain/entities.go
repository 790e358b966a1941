package domain

import "time"

// User roles
const (
	RoleUser   = "USER"
	RoleAuthor = "AUTHOR"
	RoleAdmin  = "ADMIN"
)

// User account status
const (
	StatusActive = "ACTIVE"
	StatusFreeze = "FREEZE"
)

// User represents a registered account. RefreshToken holds the single
// currently valid refresh token; a session presenting an older value is
// rejected.
type User struct {
	ID              uint      `json:"id"`
	Phone           string    `json:"phone"`
	PasswordHash    string    `json:"-"`
	Role            string    `json:"role"`
	Status          string    `json:"status"`
	ErrorLoginCount int       `json:"-"`
	RefreshToken    string    `json:"-"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// OtpRequest tracks the per-phone registration flow. Count is the number of
// OTP requests issued today (max 3), Error the number of wrong-code or
// wrong-token attempts today (max 5). Both counters are scoped to the local
// calendar date of UpdatedAt.
type OtpRequest struct {
	ID            uint
	Phone         string
	OtpHash       string
	RememberToken string
	VerifyToken   string
	Count         int
	Error         int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OtpResult is returned by the request and verify steps: the normalized phone
// plus the bearer token for the next step of the flow.
type OtpResult struct {
	Phone string `json:"phone"`
	Token string `json:"token"`
}

// AuthResult represents a successful authentication outcome.
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
}

// Category, ItemType and Tag are taxonomy rows attached to content entities
// by unique name (connect-or-create).
type Category struct {
	ID   uint
	Name string
}

type ItemType struct {
	ID   uint
	Name string
}

type Tag struct {
	ID   uint
	Name string
}

// Post is a blog entry owned by an author.
type Post struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Body      string    `json:"body"`
	Image     string    `json:"image"`
	AuthorID  uint      `json:"authorId"`
	Category  string    `json:"category"`
	Type      string    `json:"type"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Product is a store item with an ordered image list.
type Product struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Discount    float64        `json:"discount"`
	Inventory   int            `json:"inventory"`
	Status      string         `json:"status"`
	Category    string         `json:"category"`
	Type        string         `json:"type"`
	Tags        []string       `json:"tags"`
	Images      []ProductImage `json:"images"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type ProductImage struct {
	ID   uint   `json:"id"`
	Path string `json:"path"`
}

// Setting is a key/value system setting row ("maintenance" etc).
type Setting struct {
	ID    uint   `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ImageOptimizeJob is the payload consumed by the image worker.
type ImageOptimizeJob struct {
	FilePath string `json:"filePath"`
	FileName string `json:"fileName"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Quality  int    `json:"quality"`
}

// CacheInvalidateJob carries a key-prefix pattern such as "posts:*".
type CacheInvalidateJob struct {
	Pattern string `json:"pattern"`
}
