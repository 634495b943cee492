package shared

type ServerConfig struct {
	Sqlite    SqliteConfig    `mapstructure:"sqlite" validate:"required"`
	Folio     FolioConfig     `mapstructure:"folio" validate:"required"`
	Owner     OwnerConfig     `mapstructure:"owner" validate:"required"`
	Google    GoogleConfig    `mapstructure:"google"`
	Twilio    TwilioConfig    `mapstructure:"twilio"`
	RateLimit RateLimitConfig `mapstructure:"rateLimit"`
}

type SqliteConfig struct {
	PassPhrase string `mapstructure:"passPhrase" validate:"required"`
}

type FolioConfig struct {
	PrivateKeyPem string         `mapstructure:"privateKeyPem" validate:"required"`
	Cron          CronConfig     `mapstructure:"cron" validate:"required"`
	Listener      ListenerConfig `mapstructure:"listener" validate:"required"`
	Workers       int            `mapstructure:"workers" validate:"omitempty,min=1,max=25"`
}

// OwnerConfig describes the site owner, who receives notifications and is
// the only admin account.
type OwnerConfig struct {
	Name         string `mapstructure:"name" validate:"required"`
	Email        string `mapstructure:"email" validate:"required,email"`
	PasswordHash string `mapstructure:"passwordHash" validate:"required"`
	PhoneNumber  string `mapstructure:"phoneNumber" validate:"omitempty,e164"`
}

type GoogleConfig struct {
	ApplicationCredentials string        `mapstructure:"applicationCredentials"`
	Storage                StorageConfig `mapstructure:"storage"`
}

type CronConfig struct {
	TimeZone string `mapstructure:"timeZone" validate:"required"`
}

type ListenerConfig struct {
	Port int `mapstructure:"port" validate:"required"`
}

type StorageConfig struct {
	Bucket                    string `mapstructure:"bucket" validate:"required_with=EnableSqliteBackupAndSync"`
	Prefix                    string `mapstructure:"prefix" validate:"required_with=EnableSqliteBackupAndSync"`
	SqliteBackupSchedule      string `mapstructure:"sqliteBackupSchedule" validate:"required_with=EnableSqliteBackupAndSync"`
	EnableSqliteBackupAndSync bool   `mapstructure:"enableSqliteBackupAndSync"`
}

type TwilioConfig struct {
	AccountSid          string `mapstructure:"accountSid" validate:"required_with=AuthToken"`
	AuthToken           string `mapstructure:"authToken" validate:"required_with=AccountSid"`
	MessagingServiceSid string `mapstructure:"messagingServiceSid" validate:"required_with=AccountSid"`
}

// RateLimitConfig caps contact submissions per client address.
// X-Forwarded-For is only read from connections in TrustedProxies (CIDRs).
type RateLimitConfig struct {
	Limit          int      `mapstructure:"limit" validate:"omitempty,min=1"`
	WindowMinutes  int      `mapstructure:"windowMinutes" validate:"omitempty,min=1"`
	TrustedProxies []string `mapstructure:"trustedProxies"`
}
