package errors

// Registered error codes.
const (
	CodeDuplicateKey     = "V101"
	CodeNodeReused       = "V102"
	CodeUnknownListener  = "V103"
	CodeBuilderSealed    = "V104"
	CodeInvalidAttrValue = "V105"
	CodeMixedChildren    = "V106"

	CodeRenderFailed  = "R201"
	CodeAdoptMismatch = "R202"

	CodeConfigInvalid  = "C301"
	CodeConfigNotFound = "C302"

	CodeBadArgs = "C401"
)

// Template defines a registered error type.
type Template struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	CodeDuplicateKey: {
		Category:   CategoryValidation,
		Message:    "Duplicate sibling key",
		Suggestion: "Keys must be unique among the children of one node",
	},
	CodeNodeReused: {
		Category:   CategoryValidation,
		Message:    "Node is already bound to a live node",
		Suggestion: "Use Clone() to place the same subtree at a second position",
	},
	CodeUnknownListener: {
		Category:   CategoryValidation,
		Message:    "Unsupported event listener attribute",
		Suggestion: "Attribute names starting with \"on\" are reserved for listeners in the event table",
	},
	CodeBuilderSealed: {
		Category:   CategoryValidation,
		Message:    "Builder used after Seal",
		Suggestion: "Create a new builder; sealed nodes are immutable",
	},
	CodeInvalidAttrValue: {
		Category: CategoryValidation,
		Message:  "Invalid attribute value",
	},
	CodeMixedChildren: {
		Category: CategoryValidation,
		Message:  "Children must be either text or a node sequence",
	},
	CodeRenderFailed: {
		Category: CategoryRender,
		Message:  "Render failed",
	},
	CodeAdoptMismatch: {
		Category:   CategoryRender,
		Message:    "Existing live nodes do not match the tree",
		Suggestion: "Adopt markup produced by RenderToString for the same tree",
	},
	CodeConfigInvalid: {
		Category:   CategoryConfig,
		Message:    "Invalid configuration",
		Suggestion: "Check that vtree.json is valid JSON",
	},
	CodeConfigNotFound: {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
	},
	CodeBadArgs: {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
