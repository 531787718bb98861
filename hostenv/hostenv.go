package hostenv

import "os"

// Markers whose presence indicates a serverless execution context.
var serverlessMarkers = []string{
	"AWS_LAMBDA_FUNCTION_NAME", // AWS Lambda
	"LAMBDA_TASK_ROOT",         // AWS Lambda (runtime layer)
	"FUNCTION_TARGET",          // Google Cloud Functions
	"K_SERVICE",                // Cloud Run / Knative
	"FUNCTIONS_WORKER_RUNTIME", // Azure Functions
	"VERCEL",                   // Vercel
	"NETLIFY",                  // Netlify
}

// Config carries environment-derived defaults. It is plain data; callers
// may override any field before passing it on.
type Config struct {
	// Serverless reports whether a known serverless marker was present.
	Serverless bool

	// RetainHandle controls whether resolved backend handles are cached
	// across loads. Disabled in serverless contexts, where the process
	// may be frozen and thawed between invocations.
	RetainHandle bool

	// ResultCache controls whether result caching is enabled by default.
	ResultCache bool
}

// Detect inspects the process environment once and returns the derived
// defaults. A marker counts as present when it is set and non-empty.
func Detect() Config {
	return detect(os.LookupEnv)
}

func detect(lookup func(string) (string, bool)) Config {
	serverless := false
	for _, marker := range serverlessMarkers {
		if v, ok := lookup(marker); ok && v != "" {
			serverless = true
			break
		}
	}
	return Config{
		Serverless:   serverless,
		RetainHandle: !serverless,
		ResultCache:  true,
	}
}
