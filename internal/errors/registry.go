package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Snapshot Errors (R001-R009)
	// ============================================

	"R001": {
		Category:   CategorySnapshot,
		Message:    "Router state is nil",
		Suggestion: "Pass the snapshot the router emitted for the completed navigation",
	},
	"R002": {
		Category:   CategorySnapshot,
		Message:    "Router state has no root route",
		Suggestion: "Send the snapshot produced by the router, not a subtree",
	},
	"R003": {
		Category:   CategorySnapshot,
		Message:    "Route tree contains a cycle",
		Suggestion: "Nest routes through children only; parent and root links are rebuilt on decode",
	},
	"R004": {
		Category: CategorySnapshot,
		Message:  "Route tree contains a nil child",
	},

	// ============================================
	// Serializer Errors (R010-R019)
	// ============================================

	"R010": {
		Category:   CategorySerializer,
		Message:    "Unknown serializer",
		Suggestion: `Use "full" or "minimal"`,
	},

	// ============================================
	// Codec Errors (R020-R029)
	// ============================================

	"R020": {
		Category:   CategoryCodec,
		Message:    "Invalid router state JSON",
		Suggestion: `Send an object of the form {"url": "...", "root": {...}}`,
	},
	"R021": {
		Category: CategoryCodec,
		Message:  "Failed to encode serialized state",
	},

	// ============================================
	// Archive Errors (R030-R039)
	// ============================================

	"R030": {
		Category: CategoryArchive,
		Message:  "Failed to archive serialized state",
	},
	"R031": {
		Category: CategoryArchive,
		Message:  "Archived state not found",
	},
	"R032": {
		Category:   CategoryArchive,
		Message:    "Archive not configured",
		Suggestion: "Set archive.bucket in routerstore.json or ROUTERSTORE_ARCHIVE_BUCKET",
	},
	"R033": {
		Category:   CategoryArchive,
		Message:    "Invalid archive id",
		Suggestion: "Use ids without slashes or dot segments",
	},
	"R034": {
		Category: CategoryArchive,
		Message:  "Failed to read archived states",
	},

	// ============================================
	// Config Errors (R040-R049)
	// ============================================

	"R040": {
		Category: CategoryConfig,
		Message:  "Failed to read configuration",
	},
	"R041": {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Suggestion: "Create routerstore.json or pass --config",
	},
	"R042": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
