package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Contacts/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Contacts"
	AppID             = "com.github.tartampluch.go-contacts"
	KeyringService    = "com.github.tartampluch.go-contacts"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs and the contact snapshot.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure app directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWinWidth        = 720
	MainWinHeight       = 480
	EditorWindowWidth   = 480
	SettingsWindowWidth = 600

	// Preference Keys
	PrefLanguage       = "language"
	PrefStorageBackend = "storage_backend"
	PrefFeedPort       = "feed_port"
	PrefImportURL      = "import_url"
	PrefImportUser     = "import_username"
	PrefLastRun        = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Contact Table Constants
// -----------------------------------------------------------------------------

const (
	// Table Column IDs
	ColIDName     = 0
	ColIDUserName = 1
	ColIDPhone    = 2
	ColIDEmail    = 3
	TableColumns  = 4

	// Table Layout
	ColWidthName     = 220
	ColWidthUserName = 130
	ColWidthPhone    = 140
	ColWidthEmail    = 200

	TablePlaceholder = "Cell Content"
	LogMsgOpenEditor = "Opening contact editor"
	LogMsgSorted     = "Contacts sorted"

	// Sorting Indicators
	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyWinEditorAdd   = "win_editor_add"
	TKeyWinEditorEdit  = "win_editor_edit"
	TKeyWinSettings    = "win_settings"
	TKeySearchHolder   = "search_placeholder"
	TKeyStatusCount    = "status_count"      // Requires Count > 0
	TKeyStatusEmpty    = "status_count_zero" // Explicit key for 0
	TKeyBtnAdd         = "btn_add"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyBtnDelete      = "btn_delete"
	TKeyBtnBrowse      = "btn_browse"
	TKeyMenuFile       = "menu_file"
	TKeyMenuImportFile = "menu_import_file"
	TKeyMenuImportURL  = "menu_import_url"
	TKeyMenuExport     = "menu_export_file"
	TKeyMenuSettings   = "menu_settings"
	TKeyConfirmDelete  = "confirm_delete_title"
	TKeyConfirmDelMsg  = "confirm_delete_msg" // Requires Name
	TKeyNotifImportOK  = "notif_import_ok"    // Requires Added, Skipped
	TKeyNotifImportErr = "notif_import_err"
	TKeyNotifExportOK  = "notif_export_ok"
	TKeyNotifStorage   = "notif_storage_warn"

	// Editor Form Labels
	TKeyLblFirstName = "lbl_first_name"
	TKeyLblLastName  = "lbl_last_name"
	TKeyLblUserName  = "lbl_username"
	TKeyLblPhone     = "lbl_phone"
	TKeyLblEmail     = "lbl_email"
	TKeyLblAddress   = "lbl_address"

	// Settings Labels
	TKeyLblLanguage = "lbl_language"
	TKeyHelpLang    = "help_language"
	TKeyLblGeneral  = "lbl_general"
	TKeyLblStorage  = "lbl_storage"
	TKeyLblBackend  = "lbl_backend"
	TKeyHelpBackend = "help_backend"
	TKeyBackendFile = "backend_file"
	TKeyBackendSQL  = "backend_sqlite"
	TKeyLblFeed     = "lbl_feed"
	TKeyLblPort     = "lbl_feed_port"
	TKeyHelpPort    = "help_feed_port"
	TKeyLblRemote   = "lbl_remote_import"
	TKeyLblURL      = "lbl_url"
	TKeyHelpURL     = "help_import_url"
	TKeyLblUser     = "lbl_user"
	TKeyLblPass     = "lbl_pass"
	TKeyLblFooter   = "lbl_footer"

	// Column Headers
	TKeyColName     = "col_name"
	TKeyColUserName = "col_username"
	TKeyColPhone    = "col_phone"
	TKeyColEmail    = "col_email"

	// Validation Errors (UI)
	TKeyErrRequired  = "err_field_required"
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	StorageBackendFile   = "file"
	StorageBackendSQLite = "sqlite"
	DefaultBackend       = StorageBackendFile
	DefaultPort          = "18081"
	DefaultLanguage      = "en"
)

// -----------------------------------------------------------------------------
// Persistence: Snapshot Slot
// -----------------------------------------------------------------------------

const (
	SnapshotSlot     = "contacts"
	SnapshotFileName = "contacts.json"
	SnapshotTmpExt   = ".tmp"
	SQLiteFileName   = "contacts.db"
	SQLiteDriver     = "sqlite3"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Timestamp layout for the vCard REV property.
	VCardRevLayout = "20060102T150405Z"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB: generous bound for an address book
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType  = "Content-Type"
	HeaderCacheControl = "Cache-Control"
	HeaderETag         = "ETag"
	HeaderAllow        = "Allow"
	HeaderXContentType = "X-Content-Type-Options"
	HeaderUserAgent    = "User-Agent"
	HeaderIfNoneMatch  = "If-None-Match"

	MimeTextVCard       = "text/vcard; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrFieldRequired  = "validation error: required field is empty"
	ErrUnknownBackend = "configuration error: unknown storage backend"
	ErrURLEmpty       = "configuration error: import URL is empty"
	ErrServerStartup  = "feed server startup failed"
	ErrServerShutdown = "feed server shutdown failed"
	ErrPortRequired   = "feed port is required"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrVCardEncode    = "failed to encode vCard data"
	ErrSnapshotRead   = "failed to read contact snapshot"
	ErrSnapshotWrite  = "failed to write contact snapshot"
	ErrSnapshotDecode = "failed to decode contact snapshot"
	ErrStorageOpen    = "failed to open snapshot storage"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrConfigDir      = "could not determine user config dir"
	ErrCreateDir      = "could not create app dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrLocNotInit     = "localizer not initialized"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackStatusCount = "%d contacts"
	FallbackImportOK    = "Imported %d contacts (%d skipped)."

	TitleStartupError = "Startup Error"
	TitleImportError  = "Import Error"
	TitleStorageWarn  = "Storage Warning"

	MsgPortBusy       = "Port %s is busy or unavailable."
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgAppStarting    = "Starting application"
	MsgServerListen   = "vCard feed listening"
	MsgServerStop     = "Shutting down vCard feed..."
	MsgFeedUpdated    = "vCard feed updated"
	MsgBookLoaded     = "Contact book loaded"
	MsgContactAdded   = "Contact added"
	MsgContactUpdated = "Contact updated"
	MsgContactDeleted = "Contact deleted"
	MsgSearchApplied  = "Search filter applied"
	MsgPersistFailed  = "Snapshot persistence failed, continuing in memory"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedRecord  = "Skipping malformed snapshot record"
	MsgImportStart    = "vCard import started"
	MsgImportDone     = "vCard import finished"
	MsgExportDone     = "vCard export finished"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgSavingPrefs    = "Saving preferences"

	PlaceholderURL = "https://..."
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyBackend   = "backend"
	LogKeyID        = "contact_id"
	LogKeyQuery     = "query"
	LogKeyCount     = "count"
	LogKeyMatches   = "matches"
	LogKeyAdded     = "added"
	LogKeySkipped   = "skipped"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompUIEdit  = "ui_editor"
	CompBook    = "book"
	CompStorage = "storage"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompMain    = "main"
	CompI18n    = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
