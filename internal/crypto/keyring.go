package crypto

// Keyring stores a single secret
type Keyring interface {
	GetKey() (string, error)
	SetKey(secret string) error
	DeleteKey() error
	IsAvailable() bool
}

const ServiceName = "lumina"

// Entry names a secret in the OS keyring and the environment variable that
// stands in for it where no keyring is available
type Entry struct {
	Name   string
	EnvVar string
}

var (
	// DatabaseKey encrypts the local database
	DatabaseKey = Entry{Name: "db-encryption-key", EnvVar: "LUMINA_DB_KEY"}

	// APIKey authenticates calls to the text-generation model
	APIKey = Entry{Name: "ai-api-key", EnvVar: "LUMINA_API_KEY"}
)

// NewKeyring returns the best available keyring implementation for entry
func NewKeyring(entry Entry) Keyring {
	return newPlatformKeyring(entry)
}
