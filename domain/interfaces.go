package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations. Update saves the whole
// row and touches UpdatedAt; counter mutations are read-modify-write by
// design (see DESIGN.md).
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
	List(ctx context.Context, skip, take int) ([]User, error)
}

// OtpRepository defines OTP row data access operations.
type OtpRepository interface {
	Create(ctx context.Context, otp *OtpRequest) error
	FindByPhone(ctx context.Context, phone string) (*OtpRequest, error)
	Update(ctx context.Context, otp *OtpRequest) error
}

// PostInput carries validated fields for a post mutation. An empty Image on
// update keeps the existing file.
type PostInput struct {
	Title    string
	Content  string
	Body     string
	Image    string
	Category string
	Type     string
	Tags     []string
	AuthorID uint
}

// PostSummary is the list-projection of a post.
type PostSummary struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	AuthorID  uint      `json:"authorId"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostListOptions selects a page of posts. Cursor of zero means from the
// start; Take is limit+1 so the caller can detect a next page.
type PostListOptions struct {
	Skip   int
	Take   int
	Cursor uint
}

// PostRepository defines post data access operations. Taxonomy rows named in
// the input are connected-or-created by unique name.
type PostRepository interface {
	Create(ctx context.Context, in PostInput) (*Post, error)
	Update(ctx context.Context, id uint, in PostInput) (*Post, error)
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Post, error)
	FindWithRelations(ctx context.Context, id uint) (*Post, error)
	ListOffset(ctx context.Context, opts PostListOptions) ([]PostSummary, error)
	ListCursor(ctx context.Context, opts PostListOptions) ([]PostSummary, error)
}

// ProductInput carries validated fields for a product mutation. Non-empty
// ImagePaths on update replace the existing image rows.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Discount    float64
	Inventory   int
	Category    string
	Type        string
	Tags        []string
	ImagePaths  []string
}

// ProductSummary is the list-projection of a product with its first image.
type ProductSummary struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Discount float64 `json:"discount"`
	Status   string  `json:"status"`
	Image    string  `json:"image"`
}

// ProductListOptions selects a cursor page of products, optionally filtered
// by taxonomy ids.
type ProductListOptions struct {
	Take       int
	Cursor     uint
	Categories []uint
	Types      []uint
}

// ProductRepository defines product data access operations.
type ProductRepository interface {
	Create(ctx context.Context, in ProductInput) (*Product, error)
	Update(ctx context.Context, id uint, in ProductInput) (*Product, error)
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindWithRelations(ctx context.Context, id uint) (*Product, error)
	ListCursor(ctx context.Context, opts ProductListOptions) ([]ProductSummary, error)
}

// SettingRepository stores key/value system settings with upsert-by-key.
type SettingRepository interface {
	Get(ctx context.Context, key string) (*Setting, error)
	Upsert(ctx context.Context, key, value string) error
}

// OtpService drives the phone-registration and password-reset state machines.
type OtpService interface {
	RequestOtp(ctx context.Context, phone string) (*OtpResult, error)
	VerifyOtp(ctx context.Context, phone, code, rememberToken string) (*OtpResult, error)
	ConfirmPassword(ctx context.Context, phone, password, verifyToken string) (*AuthResult, error)
	ForgetPassword(ctx context.Context, phone string) (*OtpResult, error)
	VerifyResetOtp(ctx context.Context, phone, code, rememberToken string) (*OtpResult, error)
	ResetPassword(ctx context.Context, phone, password, verifyToken string) (*AuthResult, error)
}

// AuthService defines session authentication operations.
type AuthService interface {
	Login(ctx context.Context, phone, password string) (*AuthResult, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
}

// PostPage is an offset-paginated post listing.
type PostPage struct {
	Posts        []PostSummary `json:"posts"`
	CurrentPage  int           `json:"currentPage"`
	PreviousPage int           `json:"previousPage,omitempty"`
	NextPage     int           `json:"nextPage,omitempty"`
	HasNextPage  bool          `json:"hasNextPage"`
}

// PostFeed is a cursor-paginated post listing.
type PostFeed struct {
	Posts       []PostSummary `json:"posts"`
	NextCursor  uint          `json:"newCursor,omitempty"`
	HasNextPage bool          `json:"hasNextPage"`
}

// ProductFeed is a cursor-paginated product listing.
type ProductFeed struct {
	Products    []ProductSummary `json:"products"`
	NextCursor  uint             `json:"newCursor,omitempty"`
	HasNextPage bool             `json:"hasNextPage"`
}

// PostService runs the post CRUD + cache invalidation workflow and the
// cached read paths.
type PostService interface {
	Create(ctx context.Context, in PostInput) (*Post, error)
	Update(ctx context.Context, id uint, actor *User, in PostInput) (*Post, error)
	Delete(ctx context.Context, id uint, actor *User) (*Post, error)
	Get(ctx context.Context, id uint) (*Post, error)
	ListOffset(ctx context.Context, page, limit int) (*PostPage, error)
	ListCursor(ctx context.Context, cursor uint, limit int) (*PostFeed, error)
}

// ProductService runs the product CRUD + cache invalidation workflow and the
// cached read paths.
type ProductService interface {
	Create(ctx context.Context, in ProductInput) (*Product, error)
	Update(ctx context.Context, id uint, in ProductInput) (*Product, error)
	Delete(ctx context.Context, id uint) (*Product, error)
	Get(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context, opts ProductListOptions) (*ProductFeed, error)
}

// AccessClaims is the access token payload.
type AccessClaims struct {
	UserID uint
}

// RefreshClaims is the refresh token payload.
type RefreshClaims struct {
	UserID uint
	Phone  string
}

// TokenService defines signed bearer token operations. ValidateAccessToken
// returns ErrAccessTokenExpired for an expired-but-wellformed token and
// ErrTokenTampered for any other verification failure.
type TokenService interface {
	GenerateAccessToken(userID uint) (string, error)
	GenerateRefreshToken(userID uint, phone string) (string, error)
	ValidateAccessToken(token string) (*AccessClaims, error)
	ValidateRefreshToken(token string) (*RefreshClaims, error)
}

// PasswordHasher hashes and verifies secrets (passwords and OTP codes).
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hashed, plain string) bool
}

// SmsSender delivers an OTP message; delivery is an external collaborator.
type SmsSender interface {
	Send(to, message string) error
}

// JobQueue publishes fire-and-forget background jobs. Delivery is
// at-least-once; job bodies are idempotent.
type JobQueue interface {
	EnqueueImageOptimize(ctx context.Context, job ImageOptimizeJob) error
	EnqueueCacheInvalidation(ctx context.Context, pattern string) error
}

// FileStorage addresses uploaded originals and their optimized derivatives.
// Removals are idempotent: a missing file is not an error.
type FileStorage interface {
	ImagePath(name string) string
	OptimizedPath(name string) string
	Remove(name string) error
	RemoveOptimized(name string) error
}

// Cache is a cache-aside helper. GetOrSet fills dest from the cache on hit;
// on miss it invokes loader, stores the result with the configured TTL and
// fills dest. Backend errors propagate to the caller (fail closed).
type Cache interface {
	GetOrSet(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error
}

// ImageOptimizer resizes and transcodes one uploaded image. Pipeline
// internals are an external concern behind this interface.
type ImageOptimizer interface {
	Optimize(srcPath, dstPath string, width, height, quality int) error
}
